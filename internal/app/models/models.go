package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleStaff   RoleType = "STAFF"
	RoleAdmin   RoleType = "ADMIN"
)

// ApplicationStatus is the overall review status of an enrollment application
type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationInReview  ApplicationStatus = "in-review"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
)

// ValidApplicationStatus reports whether s is a member of the closed status set
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationSubmitted, ApplicationInReview, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// DocumentStatus is the review status of a single submitted document
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

// ReviewDecision is a reviewer's verdict on a document
type ReviewDecision string

const (
	DecisionApproved ReviewDecision = "approved"
	DecisionRejected ReviewDecision = "rejected"
)

// FormState is the position of a multi-stage clearance form in its
// approval sequence. There is no rejected state: the source workflow
// only models rejection for documents.
type FormState string

const (
	FormNotSubmitted          FormState = "not_submitted"
	FormPendingFirstApproval  FormState = "pending_first_approval"
	FormPendingSecondApproval FormState = "pending_second_approval"
	FormApproved              FormState = "approved"
)

// FormType identifies a clearance form
type FormType string

const (
	FormNewClearance       FormType = "newClearance"
	FormMedical            FormType = "medical"
	FormAccommodation      FormType = "accommodation"
	FormCourseRegistration FormType = "courseRegistration"
	FormLibrary            FormType = "library"
)

// KnownFormTypes lists every form the workflow manages, gate form first
var KnownFormTypes = []FormType{
	FormNewClearance,
	FormMedical,
	FormAccommodation,
	FormCourseRegistration,
	FormLibrary,
}

// ValidFormType reports whether t is a managed form type
func ValidFormType(t FormType) bool {
	for _, known := range KnownFormTypes {
		if t == known {
			return true
		}
	}
	return false
}
