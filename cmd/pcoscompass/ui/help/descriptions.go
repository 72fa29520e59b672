package help

// HelpText contains information about an intake field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for all intake fields
var Texts = map[string]HelpText{
	"patient_name": {
		Title:       "PATIENT NAME",
		Description: "Full name of the patient.",
		Details:     "Appears in the generated report header.",
	},
	"region": {
		Title:       "REGION",
		Description: "Geographic region or clinic location.",
		Details:     "Used to tailor regional guideline references in the report.",
	},
	"cycle_length_days": {
		Title:       "CYCLE LENGTH",
		Description: "Average menstrual cycle length in days.",
		Details: `Typical: 21-35 days
> 35 days suggests oligomenorrhea (a Rotterdam criterion)`,
	},
	"cycles_per_year": {
		Title:       "CYCLES PER YEAR",
		Description: "Number of menstrual cycles in the last 12 months.",
		Details:     "< 9 cycles/year suggests oligo-ovulation.",
	},
	"total_testosterone": {
		Title:       "TOTAL TESTOSTERONE",
		Description: "Serum total testosterone in ng/dL.",
		Details: `Reference: 15-70 ng/dL
Elevated values support biochemical hyperandrogenism`,
	},
	"shbg": {
		Title:       "SHBG",
		Description: "Sex hormone binding globulin in nmol/L.",
		Details: `Reference: 18-144 nmol/L
Low SHBG raises the free androgen index`,
	},
	"fasting_insulin": {
		Title:       "FASTING INSULIN",
		Description: "Fasting serum insulin in µIU/mL.",
		Details: `Reference: 2-25 µIU/mL
Used with fasting glucose to compute HOMA-IR`,
	},
	"fasting_glucose": {
		Title:       "FASTING GLUCOSE",
		Description: "Fasting plasma glucose in mg/dL.",
		Details: `Reference: 70-100 mg/dL
100-125 indicates impaired fasting glucose`,
	},
	"tsh": {
		Title:       "TSH",
		Description: "Thyroid stimulating hormone in mIU/L.",
		Details: `Reference: 0.4-4.0 mIU/L
Screens out thyroid dysfunction as an alternate cause`,
	},
	"prolactin": {
		Title:       "PROLACTIN",
		Description: "Serum prolactin in ng/mL.",
		Details: `Reference: 4-23 ng/mL
Screens out hyperprolactinemia as an alternate cause`,
	},
	"crp": {
		Title:       "CRP",
		Description: "C-reactive protein in mg/L.",
		Details: `Reference: < 3 mg/L
Marker of low-grade inflammation`,
	},
	"follicle_count_left": {
		Title:       "FOLLICLE COUNT (LEFT)",
		Description: "Antral follicle count of the left ovary.",
		Details:     ">= 12 follicles per ovary supports polycystic morphology.",
	},
	"follicle_count_right": {
		Title:       "FOLLICLE COUNT (RIGHT)",
		Description: "Antral follicle count of the right ovary.",
		Details:     ">= 12 follicles per ovary supports polycystic morphology.",
	},
	"ovarian_volume_left": {
		Title:       "OVARIAN VOLUME (LEFT)",
		Description: "Volume of the left ovary in mL.",
		Details:     "> 10 mL supports polycystic morphology.",
	},
	"ovarian_volume_right": {
		Title:       "OVARIAN VOLUME (RIGHT)",
		Description: "Volume of the right ovary in mL.",
		Details:     "> 10 mL supports polycystic morphology.",
	},
	"ultrasound_image": {
		Title:       "ULTRASOUND IMAGE",
		Description: "Optional ultrasound still for the record.",
		Details: `Accepted: JPEG, PNG or DICOM, up to 10 MB
Kept locally with the intake, not sent to the analysis service`,
	},
}
