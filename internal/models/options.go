package models

// Selection options rendered as reply-keyboard buttons. Values are stored
// verbatim, so the button label is the canonical value.

func GenderOptions() []string {
	return []string{"Male", "Female"}
}

func CountryOptions() []string {
	return []string{"Ethiopia", "Kenya", "Nigeria", "South Africa", "Other"}
}

func CityOptions() []string {
	return []string{
		"Addis Ababa",
		"Adama",
		"Bahir Dar",
		"Dire Dawa",
		"Hawassa",
		"Mekelle",
		"Other",
	}
}

func CompanyKindOptions() []string {
	return []string{"Company", "Startup"}
}

func JobCategoryOptions() []string {
	return []string{
		"Accounting and Finance",
		"Creative Arts",
		"Engineering",
		"Health Care",
		"IT and Software",
		"Management",
		"Marketing and Sales",
		"Other",
	}
}

func JobSiteOptions() []string {
	return []string{"On-site", "Remote"}
}

func EmploymentTypeOptions() []string {
	return []string{"Full-time", "Part-time", "Contract", "Freelance", "Internship"}
}

func SectorOptions() []string {
	return []string{"Private", "Government", "NGO", "Other"}
}

func EducationOptions() []string {
	return []string{
		"Not required",
		"High school",
		"Diploma",
		"Bachelor's degree",
		"Master's degree",
		"PhD",
	}
}

func ExperienceOptions() []string {
	return []string{
		"No experience",
		"1-2 years",
		"3-5 years",
		"6-10 years",
		"More than 10 years",
	}
}

func GenderPrefOptions() []string {
	return []string{"Any", "Male", "Female"}
}

func SalaryTypeOptions() []string {
	return []string{"Fixed", "Negotiable"}
}

func CurrencyOptions() []string {
	return []string{"ETB", "USD", "EUR"}
}

func oneOf(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

func IsValidGender(value string) bool     { return oneOf(GenderOptions(), value) }
func IsValidCountry(value string) bool    { return oneOf(CountryOptions(), value) }
func IsValidCity(value string) bool       { return oneOf(CityOptions(), value) }
func IsValidJobSite(value string) bool    { return oneOf(JobSiteOptions(), value) }
func IsValidEmployment(value string) bool { return oneOf(EmploymentTypeOptions(), value) }
