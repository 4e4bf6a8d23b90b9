package seeder

import (
	"github.com/ndtprep/examtrainer/internal/entities"
)

// seedCategories is the static NDT exam category set. Category ids are
// stable across reseeds so the upsert stays idempotent.
var seedCategories = []entities.Category{
	{
		ID:                     "cert_standards",
		Name:                   "Certification Standards",
		Description:            "SNT-TC-1A, CP-189, ACCP, ISO 9712, and related standards",
		Icon:                   "certificate",
		Color:                  "#4CAF50",
		TotalQuestions:         300,
		RequiredPassPercentage: 70,
	},
	{
		ID:                     "materials_processes",
		Name:                   "Materials & Processes",
		Description:            "Metallurgy, welding processes, casting, forging, and material defects",
		Icon:                   "factory",
		Color:                  "#2196F3",
		TotalQuestions:         250,
		RequiredPassPercentage: 70,
	},
	{
		ID:                     "ndt_methods",
		Name:                   "NDT Methods",
		Description:            "PT, MT, RT, UT, ET, VT, LT, AE, and other testing methods",
		Icon:                   "magnify-scan",
		Color:                  "#FF9800",
		TotalQuestions:         400,
		RequiredPassPercentage: 70,
	},
	{
		ID:                     "safety_quality",
		Name:                   "Safety & Quality",
		Description:            "Safety procedures, quality control, and regulatory requirements",
		Icon:                   "shield-check",
		Color:                  "#9C27B0",
		TotalQuestions:         150,
		RequiredPassPercentage: 70,
	},
}

func strptr(s string) *string {
	return &s
}

// seedQuestions is the sample bank. Question ids are generated per seeding
// run, so these entries deliberately carry none.
var seedQuestions = []entities.Question{
	{
		CategoryID: "cert_standards",
		Question:   "According to SNT-TC-1A, who is responsible for the certification of NDT personnel?",
		Options: []entities.Option{
			{ID: "a", Text: "The employer"},
			{ID: "b", Text: "ASNT"},
			{ID: "c", Text: "An outside agency"},
			{ID: "d", Text: "The NDT Level III"},
		},
		CorrectAnswer: "a",
		Explanation:   "SNT-TC-1A clearly states that the employer is responsible for the certification of NDT personnel. This is a fundamental principle of the recommended practice.",
		Difficulty:    entities.DifficultyEasy,
		References:    entities.StringList{"SNT-TC-1A Section 1.4"},
		Tags:          entities.StringList{"SNT-TC-1A", "Certification", "Responsibility"},
	},
	{
		CategoryID: "cert_standards",
		Question:   "What is the minimum documented training hours for Level II Ultrasonic Testing per SNT-TC-1A?",
		Options: []entities.Option{
			{ID: "a", Text: "40 hours"},
			{ID: "b", Text: "80 hours"},
			{ID: "c", Text: "120 hours"},
			{ID: "d", Text: "160 hours"},
		},
		CorrectAnswer: "a",
		Explanation:   "SNT-TC-1A recommends a minimum of 40 hours of documented training for Level II UT certification.",
		Difficulty:    entities.DifficultyMedium,
		References:    entities.StringList{"SNT-TC-1A Table 6.3.1A"},
		Tags:          entities.StringList{"SNT-TC-1A", "Training Hours", "UT"},
	},
	{
		CategoryID: "cert_standards",
		Question:   "Under CP-189, what is the validity period for ACCP Level II certification?",
		Options: []entities.Option{
			{ID: "a", Text: "3 years"},
			{ID: "b", Text: "5 years"},
			{ID: "c", Text: "10 years"},
			{ID: "d", Text: "Lifetime"},
		},
		CorrectAnswer: "b",
		Explanation:   "CP-189 specifies that ACCP certifications are valid for 5 years from the date of issue.",
		Difficulty:    entities.DifficultyEasy,
		References:    entities.StringList{"ANSI/ASNT CP-189 Section 10"},
		Tags:          entities.StringList{"CP-189", "ACCP", "Validity Period"},
	},
	{
		CategoryID: "materials_processes",
		Question:   "What is the carbon content range for medium carbon steel?",
		Options: []entities.Option{
			{ID: "a", Text: "0.05% - 0.30%"},
			{ID: "b", Text: "0.30% - 0.60%"},
			{ID: "c", Text: "0.60% - 1.00%"},
			{ID: "d", Text: "1.00% - 1.70%"},
		},
		CorrectAnswer: "b",
		Explanation:   "Medium carbon steels contain 0.30% to 0.60% carbon. This range provides a balance between strength and ductility.",
		Difficulty:    entities.DifficultyMedium,
		References:    entities.StringList{"Materials Science Handbook"},
		Tags:          entities.StringList{"Materials", "Carbon Steel", "Metallurgy"},
	},
	{
		CategoryID: "materials_processes",
		Question:   "Which welding defect is characterized by incomplete fusion between the weld metal and base metal?",
		Options: []entities.Option{
			{ID: "a", Text: "Porosity"},
			{ID: "b", Text: "Lack of fusion"},
			{ID: "c", Text: "Undercut"},
			{ID: "d", Text: "Slag inclusion"},
		},
		CorrectAnswer: "b",
		Explanation:   "Lack of fusion occurs when there is no metallurgical bond between the weld metal and base metal or between successive weld passes.",
		Difficulty:    entities.DifficultyEasy,
		References:    entities.StringList{"AWS D1.1", "Welding Inspection Handbook"},
		Tags:          entities.StringList{"Welding", "Defects", "Lack of Fusion"},
	},
	{
		CategoryID: "materials_processes",
		Question:   "What is the carbon equivalent (CE) formula used to assess weldability?",
		Options: []entities.Option{
			{ID: "a", Text: "CE = C + Mn/6"},
			{ID: "b", Text: "CE = C + Mn/6 + (Cr+Mo+V)/5 + (Ni+Cu)/15"},
			{ID: "c", Text: "CE = C × Mn"},
			{ID: "d", Text: "CE = C + Si/24"},
		},
		CorrectAnswer: "b",
		Explanation:   "The IIW carbon equivalent formula considers the effect of various alloying elements on hardenability and weldability.",
		Difficulty:    entities.DifficultyHard,
		References:    entities.StringList{"IIW Guidelines", "AWS D1.1"},
		Tags:          entities.StringList{"Welding", "Carbon Equivalent", "Weldability"},
		FormulaLatex:  strptr(`CE = C + \frac{Mn}{6} + \frac{Cr+Mo+V}{5} + \frac{Ni+Cu}{15}`),
	},
	{
		CategoryID: "ndt_methods",
		Question:   "In ultrasonic testing, what is the relationship between frequency and penetration?",
		Options: []entities.Option{
			{ID: "a", Text: "Higher frequency = greater penetration"},
			{ID: "b", Text: "Lower frequency = greater penetration"},
			{ID: "c", Text: "Frequency does not affect penetration"},
			{ID: "d", Text: "Penetration is only affected by power"},
		},
		CorrectAnswer: "b",
		Explanation:   "Lower frequencies have longer wavelengths and greater penetration ability, while higher frequencies provide better resolution but less penetration.",
		Difficulty:    entities.DifficultyMedium,
		References:    entities.StringList{"UT Level III Study Guide", "ASNT Handbook"},
		Tags:          entities.StringList{"UT", "Frequency", "Penetration"},
	},
	{
		CategoryID: "ndt_methods",
		Question:   "What is the primary purpose of a penetrant developer?",
		Options: []entities.Option{
			{ID: "a", Text: "To clean the surface"},
			{ID: "b", Text: "To draw penetrant out of discontinuities"},
			{ID: "c", Text: "To protect the penetrant from UV light"},
			{ID: "d", Text: "To increase penetrant viscosity"},
		},
		CorrectAnswer: "b",
		Explanation:   "Developer draws penetrant from discontinuities through capillary action and provides a contrasting background for indication visibility.",
		Difficulty:    entities.DifficultyEasy,
		References:    entities.StringList{"ASTM E165", "PT Level III Study Guide"},
		Tags:          entities.StringList{"PT", "Developer", "Capillary Action"},
		FormulaLatex:  strptr(`h = \frac{2\gamma \cos\theta}{\rho g r}`),
	},
	{
		CategoryID: "ndt_methods",
		Question:   "Which eddy current testing frequency would provide the best penetration in aluminum?",
		Options: []entities.Option{
			{ID: "a", Text: "100 Hz"},
			{ID: "b", Text: "1 kHz"},
			{ID: "c", Text: "100 kHz"},
			{ID: "d", Text: "1 MHz"},
		},
		CorrectAnswer: "b",
		Explanation:   "Lower frequencies provide better penetration in conductive materials. 1 kHz offers good penetration in aluminum while maintaining reasonable sensitivity.",
		Difficulty:    entities.DifficultyHard,
		References:    entities.StringList{"ASNT ET Level III Study Guide"},
		Tags:          entities.StringList{"ET", "Frequency", "Penetration"},
		FormulaLatex:  strptr(`\delta = \sqrt{\frac{2}{\omega\mu\sigma}}`),
	},
	{
		CategoryID: "safety_quality",
		Question:   "What is the maximum permissible dose of radiation for NDT personnel per year according to NRC regulations?",
		Options: []entities.Option{
			{ID: "a", Text: "1 rem"},
			{ID: "b", Text: "5 rem"},
			{ID: "c", Text: "10 rem"},
			{ID: "d", Text: "50 rem"},
		},
		CorrectAnswer: "b",
		Explanation:   "The NRC sets the annual occupational dose limit at 5 rem (50 mSv) for whole body exposure.",
		Difficulty:    entities.DifficultyMedium,
		References:    entities.StringList{"10 CFR 20", "NRC Regulations"},
		Tags:          entities.StringList{"Safety", "Radiation", "Regulations"},
	},
	{
		CategoryID: "safety_quality",
		Question:   "Which quality standard specifically addresses the requirements for NDT personnel qualification and certification?",
		Options: []entities.Option{
			{ID: "a", Text: "ISO 9001"},
			{ID: "b", Text: "ISO 9712"},
			{ID: "c", Text: "ISO 14001"},
			{ID: "d", Text: "ISO 45001"},
		},
		CorrectAnswer: "b",
		Explanation:   "ISO 9712 specifies requirements for qualification and certification of NDT personnel.",
		Difficulty:    entities.DifficultyEasy,
		References:    entities.StringList{"ISO 9712:2021"},
		Tags:          entities.StringList{"ISO", "Certification", "Standards"},
	},
}
