package models

// FormBlob is the last submission of one record-entry page: field name to value.
type FormBlob map[string]string

type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldEmail    FieldKind = "email"
	FieldTel      FieldKind = "tel"
	FieldNumber   FieldKind = "number"
	FieldDate     FieldKind = "date"
	FieldSelect   FieldKind = "select"
	FieldCheckbox FieldKind = "checkbox"
	FieldTextArea FieldKind = "textarea"
)

// Field describes one input of a record-entry page.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []string
	// Min and Max bound FieldNumber values when Max > Min.
	Min float64
	Max float64
}

var (
	GenderOptions     = []string{"Male", "Female", "Other"}
	frequencyOptions  = []string{"Never", "Occasionally", "Weekly", "Daily"}
	occupationOptions = []string{"Construction", "Agriculture", "Domestic Work", "Factory", "Fishing", "Other"}
	dietOptions       = []string{"Vegetarian", "Non-Vegetarian", "Eggetarian", "Vegan"}
)

// FormFields lists the inputs of every record-entry page, keyed by page name.
var FormFields = map[string][]Field{
	PageWorkers.Name: {
		{Name: "first_name", Label: "First Name", Kind: FieldText, Required: true},
		{Name: "last_name", Label: "Last Name", Kind: FieldText, Required: true},
		{Name: "age", Label: "Age", Kind: FieldNumber, Required: true, Min: 16, Max: 100},
		{Name: "gender", Label: "Gender", Kind: FieldSelect, Required: true, Options: GenderOptions},
		{Name: "phone", Label: "Phone Number", Kind: FieldTel, Required: true},
		{Name: "home_state", Label: "Home State", Kind: FieldText, Required: true},
		{Name: "occupation", Label: "Occupation", Kind: FieldSelect, Required: true, Options: occupationOptions},
		{Name: "work_hours_per_day", Label: "Typical Work Hours per Day", Kind: FieldNumber, Required: true, Min: 1, Max: 20},
		{Name: "smoking_habit", Label: "Smoking Habit", Kind: FieldSelect, Options: frequencyOptions},
		{Name: "alcohol_consumption", Label: "Alcohol Consumption", Kind: FieldSelect, Options: frequencyOptions},
		{Name: "diet_type", Label: "Diet Type", Kind: FieldSelect, Options: dietOptions},
		{Name: "access_to_clean_water", Label: "Access to Clean Water", Kind: FieldCheckbox},
	},
	PageHealthRecords.Name: {
		{Name: "record_date", Label: "Record Date", Kind: FieldDate, Required: true},
		{Name: "height_cm", Label: "Height (cm)", Kind: FieldNumber, Required: true, Min: 50, Max: 250},
		{Name: "weight_kg", Label: "Weight (kg)", Kind: FieldNumber, Required: true, Min: 20, Max: 300},
		{Name: "blood_pressure_systolic", Label: "Blood Pressure (systolic)", Kind: FieldNumber, Min: 50, Max: 250},
		{Name: "blood_pressure_diastolic", Label: "Blood Pressure (diastolic)", Kind: FieldNumber, Min: 30, Max: 150},
		{Name: "blood_sugar_level", Label: "Blood Sugar Level", Kind: FieldNumber},
		{Name: "any_chronic_disease", Label: "Chronic Disease", Kind: FieldText},
	},
	PageVaccinations.Name: {
		{Name: "vaccine_name", Label: "Vaccine Name", Kind: FieldText, Required: true},
		{Name: "dose_number", Label: "Dose Number", Kind: FieldNumber, Required: true, Min: 1, Max: 10},
		{Name: "date_administered", Label: "Date Administered", Kind: FieldDate, Required: true},
	},
	PageMedicalVisits.Name: {
		{Name: "visit_date", Label: "Visit Date", Kind: FieldDate, Required: true},
		{Name: "facility", Label: "Facility", Kind: FieldText, Required: true},
		{Name: "diagnosis", Label: "Diagnosis", Kind: FieldTextArea},
	},
	PageFacilities.Name: {
		{Name: "facility_name", Label: "Facility Name", Kind: FieldText, Required: true},
		{Name: "facility_type", Label: "Facility Type", Kind: FieldSelect, Required: true, Options: []string{"Primary Health Centre", "Community Health Centre", "District Hospital", "Private Clinic", "Mobile Unit"}},
		{Name: "district", Label: "District", Kind: FieldText, Required: true},
		{Name: "contact_phone", Label: "Contact Phone", Kind: FieldTel},
		{Name: "contact_email", Label: "Contact Email", Kind: FieldEmail},
	},
}
