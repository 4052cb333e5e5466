package dto

// RegisterUserRequest is the payload for account registration
type RegisterUserRequest struct {
	Email     string `json:"email" binding:"required,email" example:"jdoe@school.edu"`
	Password  string `json:"password" binding:"required,min=8" example:"s3cretpass"`
	FirstName string `json:"firstName" binding:"required" example:"John"`
	LastName  string `json:"lastName" binding:"required" example:"Doe"`
	RoleType  string `json:"roleType" binding:"required,oneof=STUDENT STAFF ADMIN" example:"STUDENT"`
}

// LoginRequest is the payload for credential login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jdoe@school.edu"`
	Password string `json:"password" binding:"required" example:"s3cretpass"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// UserResponse is the public projection of an account
type UserResponse struct {
	ID        int64  `json:"id" example:"1"`
	Email     string `json:"email" example:"jdoe@school.edu"`
	FirstName string `json:"firstName" example:"John"`
	LastName  string `json:"lastName" example:"Doe"`
	RoleType  string `json:"roleType" example:"STUDENT" enums:"STUDENT,STAFF,ADMIN"`
}
