package models

// Static page ids are semantic keys chosen by the frontend. Arbitrary ids
// are allowed; these are the ones the product ships with.
const (
	PageTermsAndConditions = "terms-and-conditions"
	PagePrivacyAndPolicy   = "privacy-and-policy"
	PageSocialLinks        = "social-links"
)
