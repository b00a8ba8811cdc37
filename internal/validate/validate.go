package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Func checks one unit of free-text input. It returns the normalized value,
// or an error whose message is shown to the user as a correction prompt.
type Func func(raw string) (string, error)

const (
	MinAge = 10
	MaxAge = 100

	minPhoneDigits = 9
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Name accepts alphabetic-only input. Spaces, digits and punctuation are
// rejected, so multi-word names must be collected one word per step.
func Name(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", errors.New("Please enter a name.")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return "", errors.New("Names may only contain letters. Please try again.")
		}
	}
	return name, nil
}

func Email(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if !emailRe.MatchString(email) {
		return "", errors.New("That doesn't look like an email address. Please try again (e.g. name@example.com).")
	}
	return email, nil
}

func Phone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if phone == "" || !isDigits(phone) {
		return "", errors.New("Phone numbers may only contain digits. Please try again.")
	}
	if len(phone) < minPhoneDigits {
		return "", errors.New("That phone number is too short. Please enter at least 9 digits.")
	}
	return phone, nil
}

// Age keeps the two distinct correction messages: one for non-numeric input,
// one for a number outside [10,100].
func Age(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" || !isDigits(text) {
		return "", errors.New("Please enter your age as a number.")
	}
	age, err := strconv.Atoi(text)
	if err != nil {
		return "", errors.New("Please enter your age as a number.")
	}
	if age < MinAge || age > MaxAge {
		return "", errors.New("Age must be between 10 and 100.")
	}
	return strconv.Itoa(age), nil
}

// Date requires the exact YYYY-MM-DD form and a real calendar date.
func Date(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if !dateRe.MatchString(text) {
		return "", errors.New("Please use the YYYY-MM-DD format (e.g. 2026-12-31).")
	}
	if _, err := time.Parse("2006-01-02", text); err != nil {
		return "", errors.New("That date doesn't exist. Please check and try again.")
	}
	return text, nil
}

// FutureDate is Date plus a not-in-the-past check, used for job deadlines.
func FutureDate(raw string) (string, error) {
	text, err := Date(raw)
	if err != nil {
		return "", err
	}
	d, _ := time.Parse("2006-01-02", text)
	if d.Before(time.Now().Truncate(24 * time.Hour)) {
		return "", errors.New("The deadline must be in the future.")
	}
	return text, nil
}

// CompanyName allows letters, digits and embedded spaces.
func CompanyName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || !IsAlnumWithSpaces(name) {
		return "", errors.New("Company names may only contain letters, digits and spaces.")
	}
	return name, nil
}

// JobTitle uses the same character class as CompanyName.
func JobTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" || !IsAlnumWithSpaces(title) {
		return "", errors.New("Job titles may only contain letters, digits and spaces.")
	}
	return title, nil
}

// PositiveInt is used for counts such as the number of vacancies.
func PositiveInt(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" || !isDigits(text) {
		return "", errors.New("Please enter a number.")
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 {
		return "", errors.New("Please enter a number greater than zero.")
	}
	return strconv.Itoa(n), nil
}

// FreeText accepts any non-empty input.
func FreeText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", errors.New("Please enter some text.")
	}
	return text, nil
}

// IsAlnumStrict reports whether s is letters and digits only, no spaces.
func IsAlnumStrict(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsAlnumWithSpaces is the variant allowing embedded whitespace.
func IsAlnumWithSpaces(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
