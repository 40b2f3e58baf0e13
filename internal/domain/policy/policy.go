// Package policy implements the password strength policy. Evaluation is a
// pure function of the candidate password and the configured rule set.
package policy

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// specialChars is the accepted special character set (ASCII punctuation).
const specialChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Requirement identifies a single password requirement.
type Requirement string

const (
	RequirementLength    Requirement = "length"
	RequirementUppercase Requirement = "uppercase"
	RequirementLowercase Requirement = "lowercase"
	RequirementDigit     Requirement = "digit"
	RequirementSpecial   Requirement = "special"
)

// descriptions maps requirements to their user-facing wording.
var descriptions = map[Requirement]string{
	RequirementLength:    "At least 8 characters",
	RequirementUppercase: "At least one uppercase letter",
	RequirementLowercase: "At least one lowercase letter",
	RequirementDigit:     "At least one digit",
	RequirementSpecial:   "At least one special character (!@#$%^&*)",
}

// Description returns the user-facing wording for the requirement.
func (r Requirement) Description() string {
	return descriptions[r]
}

// Strength classifies how close a password is to meeting the policy.
type Strength string

const (
	StrengthStrong Strength = "Strong"
	StrengthMedium Strength = "Medium"
	StrengthWeak   Strength = "Weak"
)

// Config enumerates the predicates a password must satisfy.
type Config struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireDigit     bool
	RequireSpecial   bool
}

// DefaultConfig returns the standard rule set: minimum 8 characters with
// uppercase, lowercase, digit and special character requirements enabled.
func DefaultConfig() Config {
	return Config{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireDigit:     true,
		RequireSpecial:   true,
	}
}

// Result holds the outcome of a policy evaluation. Failed lists unmet
// requirements in canonical order: length, uppercase, lowercase, digit,
// special. The stable ordering keeps user-facing messages reproducible.
type Result struct {
	Passed bool
	Failed []Requirement
}

// Strength classifies the result by the number of unmet requirements:
// 0 failures is Strong, 1-2 is Medium, 3 or more is Weak. The classification
// is a presentation aid; only Passed gates registration.
func (r Result) Strength() Strength {
	switch n := len(r.Failed); {
	case n == 0:
		return StrengthStrong
	case n <= 2:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}

// Evaluate checks the candidate password against every enabled requirement.
// It is deterministic and has no side effects; an empty candidate fails all
// enabled requirements.
func Evaluate(candidate string, cfg Config) Result {
	var failed []Requirement

	// Length counts characters, not bytes, so multibyte runes are not
	// shortcuts past the minimum.
	if utf8.RuneCountInString(candidate) < cfg.MinLength {
		failed = append(failed, RequirementLength)
	}
	if cfg.RequireUppercase && !containsFunc(candidate, unicode.IsUpper) {
		failed = append(failed, RequirementUppercase)
	}
	if cfg.RequireLowercase && !containsFunc(candidate, unicode.IsLower) {
		failed = append(failed, RequirementLowercase)
	}
	if cfg.RequireDigit && !containsFunc(candidate, unicode.IsDigit) {
		failed = append(failed, RequirementDigit)
	}
	if cfg.RequireSpecial && !strings.ContainsAny(candidate, specialChars) {
		failed = append(failed, RequirementSpecial)
	}

	return Result{
		Passed: len(failed) == 0,
		Failed: failed,
	}
}

// Suggest returns an example of a password that satisfies the default policy.
func Suggest() string {
	return "Example: MyP@ssw0rd123 (uppercase, lowercase, digits, special chars)"
}

func containsFunc(s string, f func(rune) bool) bool {
	for _, r := range s {
		if f(r) {
			return true
		}
	}
	return false
}
