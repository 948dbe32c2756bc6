package domain

// Registration is the body of the sign-up call. The confirmation field only
// lives in the form draft.
type Registration struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string `json:"token"`
}

var signUpFields = []string{"firstName", "lastName", "email", "phoneNumber", "password", "confirmPassword"}

func NewSignUpDraft() Draft {
	d := Draft{}
	for _, f := range signUpFields {
		d[f] = ""
	}
	return d
}

// SignUpCrosscheck recomputes the password confirmation message after a field
// change. The message is shown only when both values are filled and differ; an
// empty message clears it. Unrelated fields return nil.
func SignUpCrosscheck(d Draft, field string) map[string]string {
	if field != "password" && field != "confirmPassword" {
		return nil
	}
	pwd, confirm := d.Get("password"), d.Get("confirmPassword")
	if pwd != "" && confirm != "" && pwd != confirm {
		return map[string]string{"confirmPassword": MsgPasswordMismatch}
	}
	return map[string]string{"confirmPassword": ""}
}

func BuildRegistration(d Draft) (Registration, error) {
	if missing := missingFields(d, signUpFields...); missing != nil {
		return Registration{}, &ValidationError{Level: LevelWarning, Message: MsgFillRequired, Cause: missing}
	}
	if d.Get("password") != d.Get("confirmPassword") {
		return Registration{}, &ValidationError{
			Level:   LevelError,
			Message: MsgPasswordMismatch,
			Field:   "confirmPassword",
			Inline:  MsgPasswordMismatch,
		}
	}
	return Registration{
		FirstName:   d.Get("firstName"),
		LastName:    d.Get("lastName"),
		Email:       d.Get("email"),
		PhoneNumber: d.Get("phoneNumber"),
		Password:    d.Get("password"),
	}, nil
}

func BuildCredentials(d Draft) (Credentials, error) {
	if missing := missingFields(d, "email", "password"); missing != nil {
		return Credentials{}, &ValidationError{Level: LevelWarning, Message: MsgFillRequired, Cause: missing}
	}
	return Credentials{Email: d.Get("email"), Password: d.Get("password")}, nil
}
