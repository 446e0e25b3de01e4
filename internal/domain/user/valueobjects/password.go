package valueobjects

import (
	"fmt"
	"unicode"
)

// MaxPasswordBytes is the bcrypt input limit
const MaxPasswordBytes = 72

// Password holds a plain text password between validation and hashing.
type Password struct {
	value string
}

// PasswordPolicy defines the password validation rules
type PasswordPolicy struct {
	MinLength     int
	RequireLetter bool
	RequireNumber bool
}

// DefaultPasswordPolicy returns the default password policy
func DefaultPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		MinLength: 8,
	}
}

// Validate checks password against the policy
func (p *PasswordPolicy) Validate(password string) error {
	if len([]rune(password)) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}

	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("password must not exceed %d bytes", MaxPasswordBytes)
	}

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if p.RequireLetter && !hasLetter {
		return fmt.Errorf("password must contain at least one letter")
	}

	if p.RequireNumber && !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

// NewPassword validates plainPassword with policy, or the default policy when nil.
func NewPassword(plainPassword string, policy *PasswordPolicy) (*Password, error) {
	if policy == nil {
		policy = DefaultPasswordPolicy()
	}

	if err := policy.Validate(plainPassword); err != nil {
		return nil, err
	}

	return &Password{value: plainPassword}, nil
}

func (p *Password) String() string {
	return p.value
}
