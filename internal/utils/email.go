package utils

import (
	"strings"
)

func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	// Gmail ignores dots and + aliases in the local part
	if strings.Contains(email, "@gmail.com") {
		parts := strings.Split(email, "@")
		if len(parts) == 2 {
			localPart := parts[0]

			localPart = strings.ReplaceAll(localPart, ".", "")

			if plusIndex := strings.Index(localPart, "+"); plusIndex != -1 {
				localPart = localPart[:plusIndex]
			}

			email = localPart + "@" + parts[1]
		}
	}

	return email
}

func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	localPart := parts[0]
	domain := parts[1]

	if len(localPart) <= 2 {
		return email
	}

	maskedLocal := string(localPart[0]) + strings.Repeat("*", len(localPart)-2) + string(localPart[len(localPart)-1])

	return maskedLocal + "@" + domain
}
