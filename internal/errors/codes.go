package errors

// Error code constants
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to localized messages

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong username/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed token
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"     // username already taken

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"     // no access to this resource
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"    // only the owner may act
	AuthzBusinessOnly = "AUTHZ_BUSINESS_ONLY" // business profile required
	AuthzCustomerOnly = "AUTHZ_CUSTOMER_ONLY" // customer profile required

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput     = "VALIDATION_INVALID_INPUT"     // malformed input
	ValidationInvalidID        = "VALIDATION_INVALID_ID"        // malformed ID
	ValidationPasswordMismatch = "VALIDATION_PASSWORD_MISMATCH" // password != repeated_password

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND" // no such resource
	ResourceConflict = "RESOURCE_CONFLICT"  // uniqueness conflict

	// ==================== Profiles (PROFILE_) ====================
	ProfileNotFound = "PROFILE_NOT_FOUND" // no profile for that user

	// ==================== Offers (OFFER_) ====================
	OfferNotFound        = "OFFER_NOT_FOUND"          // offer missing
	OfferDetailNotFound  = "OFFER_DETAIL_NOT_FOUND"   // pricing tier missing
	OfferInvalidTierSet  = "OFFER_INVALID_TIER_SET"   // must be exactly basic/standard/premium
	OfferInvalidTierType = "OFFER_INVALID_TIER_TYPE"  // unknown tier type

	// ==================== Orders (ORDER_) ====================
	OrderNotFound      = "ORDER_NOT_FOUND"       // order missing
	OrderInvalidStatus = "ORDER_INVALID_STATUS"  // status outside the enum

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"       // review missing
	ReviewAlreadyExists = "REVIEW_ALREADY_EXISTS"  // one review per business per reviewer

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // non-image content type
	UploadFailed          = "UPLOAD_FAILED"            // presign failed

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unexpected error
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // storage error
)
