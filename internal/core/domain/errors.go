package domain

// Kind classifies a domain error so the transport layer can pick a status code.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindAuth
	KindNotFound
	KindForbidden
	KindUnsupportedMedia
	KindBadRequest
)

// Error is a domain error whose message is safe to show to API clients.
// Sentinels below are compared by identity with errors.Is.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Registration and login. The wording is part of the public API contract.
var (
	ErrRegisterFieldsMissing = newError(KindValidation, "Oops! Looks like you forgot something. All fields are required.")
	ErrLoginFieldsMissing    = newError(KindValidation, "Oops! Looks like you forgot something. Both email and password are required.")
	ErrInvalidEmail          = newError(KindValidation, "Oh no! This doesn't look like a valid email address. Please double-check.")
	ErrWeakPassword          = newError(KindValidation, "Uh-oh! Your password needs to be stronger. userPassword must be at least 8 characters long and include at least 1 lowercase letter (a, z), 1 uppercase letter (A, Z), 1 digit (0-9), and 1 special character (!,%,@,# etc.).")
	ErrInvalidName           = newError(KindValidation, "Uh-oh! Your full name should only contain letters and spaces. Please check and try again.")
	ErrEmailExists           = newError(KindConflict, "Oops! This email already exists. Try another one to be unique!")
	ErrNameExists            = newError(KindConflict, "Oops! This name is already taken. Try another one to be unique!")
	ErrUnknownEmail          = newError(KindAuth, "Oh no! It seems either your email or password is incorrect. Please check and try again.")
	ErrPasswordMismatch      = newError(KindAuth, "Oops! It seems your email and password are in a disagreement. Give it another shot!")
	ErrUserNotFound          = newError(KindNotFound, "User not found")
)

// ErrInvalidToken is returned by the session issuer for any token that does
// not verify. The auth middleware turns it into its own 401 message.
var ErrInvalidToken = newError(KindAuth, "invalid or expired token")

// Posts.
var (
	ErrPostNotFound    = newError(KindNotFound, "Error! Unable to find post")
	ErrOwnPostNotFound = newError(KindNotFound, "Error! Unable to find your post")
	ErrNotPostAuthor   = newError(KindForbidden, "Error! You can only modify your own posts")
)

// Images.
var (
	ErrInvalidFileType = newError(KindUnsupportedMedia, "Invalid file type. Allowed file types are: .jpeg, .jpg, .png, .webp")
	ErrImageRequired   = newError(KindBadRequest, "Image file is required")
	ErrImageURLInvalid = newError(KindBadRequest, "Image URL does not reference an image")
	ErrDraftNotFound   = newError(KindBadRequest, "Image draft not found")
	ErrObjectNotFound  = newError(KindNotFound, "object not found")
)
