package validation

import "sort"

// formOrder is the order fields appear in on the forms.
var formOrder = []string{
	"username",
	"email",
	"password",
	"confirmPassword",
	"profilePictureUrl",
	"bio",
}

var messages = map[string]map[string]string{
	"username": {
		"required":       "Username is required",
		"min":            "Username must be at least 3 characters",
		"max":            "Username cannot exceed 20 characters",
		usernameCharsTag: "Username can only contain letters, numbers, underscores, and hyphens",
	},
	"email": {
		"required": "Email is required",
		"email":    "Please enter a valid email address",
	},
	"password": {
		"required":          "Password is required",
		"min":               "Password must be at least 8 characters",
		passwordStrengthTag: "Password must contain at least one uppercase letter, one lowercase letter, and one number",
	},
	"confirmPassword": {
		"required": "Please confirm your password",
		"eqfield":  "Passwords do not match",
	},
	"profilePictureUrl": {
		imageURLTag: "Please enter a valid image URL (http/https ending in .png, .jpg, .jpeg, or .gif)",
	},
	"bio": {
		"max": "Bio cannot exceed 500 characters",
	},
}

func message(field, tag string) string {
	if msg, ok := messages[field][tag]; ok {
		return msg
	}
	return "Invalid value"
}

func sortByFormOrder(fields []string) {
	rank := func(field string) int {
		for i, f := range formOrder {
			if f == field {
				return i
			}
		}
		return len(formOrder)
	}
	sort.SliceStable(fields, func(i, j int) bool {
		ri, rj := rank(fields[i]), rank(fields[j])
		if ri != rj {
			return ri < rj
		}
		return fields[i] < fields[j]
	})
}
