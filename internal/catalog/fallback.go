package catalog

var fallbackTemplates = []Template{
	{
		ID:          "1",
		Title:       "Property Registration Application",
		Description: "Complete form for property registration in Madhya Pradesh with all required fields",
		Category:    CategoryRegistry,
		Language:    LanguageBoth,
		Rating:      4.8,
		Downloads:   1234,
		Tags:        []string{"Property", "Registration", "MP", "Real Estate"},
	},
	{
		ID:          "2",
		Title:       "Consumer Complaint Format",
		Description: "Standard format for filing consumer complaints under Consumer Protection Act",
		Category:    CategoryComplaint,
		Language:    LanguageBoth,
		Rating:      4.6,
		Downloads:   987,
		Tags:        []string{"Consumer", "Complaint", "Protection Act"},
	},
	{
		ID:          "3",
		Title:       "Employment Contract Template",
		Description: "Standard employment agreement template compliant with MP labor laws",
		Category:    CategoryEmployment,
		Language:    LanguageEnglish,
		Rating:      4.7,
		Downloads:   756,
		Tags:        []string{"Employment", "Contract", "Labor Law"},
	},
	{
		ID:          "4",
		Title:       "Partnership Deed Format",
		Description: "Partnership agreement template for business partnerships in MP",
		Category:    CategoryBusiness,
		Language:    LanguageBoth,
		Rating:      4.9,
		Downloads:   543,
		Tags:        []string{"Partnership", "Business", "Agreement"},
	},
	{
		ID:          "5",
		Title:       "RTI Application Template",
		Description: "Right to Information application format for MP government departments",
		Category:    CategoryComplaint,
		Language:    LanguageBoth,
		Rating:      4.5,
		Downloads:   2134,
		Tags:        []string{"RTI", "Information", "Government"},
	},
	{
		ID:          "6",
		Title:       "Rent Agreement Format",
		Description: "Standard rental agreement template as per MP Rent Control Act",
		Category:    CategoryRegistry,
		Language:    LanguageBoth,
		Rating:      4.4,
		Downloads:   1876,
		Tags:        []string{"Rent", "Agreement", "Property"},
	},
}
