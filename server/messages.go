package server

import (
	"github.com/jrsteele09/go-care-portal/internal/errors"
	"github.com/jrsteele09/go-care-portal/routing"
)

// Error codes travel in the ?error= query parameter. Pages only ever render
// the catalog text for a code, never the parameter itself.
const (
	errCodeInvalidCredentials = "invalid_credentials"
	errCodeNotVerified        = "not_verified"
	errCodeBlocked            = "blocked"
	errCodeWeakPassword       = "weak_password"
	errCodeUserExists         = "user_exists"
	errCodeInvalidForm        = "invalid_form"
	errCodeInvalidActivation  = "invalid_activation"
	errCodeUnexpected         = "unexpected"
)

var messages = map[routing.Locale]map[string]string{
	routing.Spanish: {
		"app.health-platform":   "Plataforma de Salud",
		"app.medical-portal":    "Portal Médico",
		"form.email":            "Correo electrónico",
		"form.password":         "Contraseña",
		"form.confirm_password": "Confirmar contraseña",
		"form.first_name":       "Nombre",
		"form.last_name":        "Apellido",
		"form.login":            "Iniciar sesión",
		"form.register":         "Crear cuenta",
		"nav.logout":            "Cerrar sesión",
		"nav.language":          "English",
		"page.welcome":          "Hola, %s",
		"page.register_success": "Tu cuenta fue creada. Revisa tu correo para activarla.",
		"page.forgot_password":  "Contacta a soporte para restablecer tu contraseña.",
		"page.activated":        "Tu cuenta está activa. Ya puedes iniciar sesión.",
		"page.not_found.title":  "Página no encontrada",
		"page.not_found.body":   "La página que buscas no existe.",

		"error.invalid_credentials": "Correo o contraseña incorrectos.",
		"error.not_verified":        "Tu cuenta aún no está activada.",
		"error.blocked":             "Tu cuenta está bloqueada. Contacta a soporte.",
		"error.weak_password":       "La contraseña debe tener al menos 8 caracteres, una mayúscula, una minúscula y un número.",
		"error.user_exists":         "Ya existe una cuenta con ese correo.",
		"error.invalid_form":        "Revisa los datos del formulario.",
		"error.invalid_activation":  "El enlace de activación no es válido.",
		"error.unexpected":          "Ocurrió un error inesperado.",
	},
	routing.English: {
		"app.health-platform":   "Health Platform",
		"app.medical-portal":    "Medical Portal",
		"form.email":            "Email",
		"form.password":         "Password",
		"form.confirm_password": "Confirm password",
		"form.first_name":       "First name",
		"form.last_name":        "Last name",
		"form.login":            "Sign in",
		"form.register":         "Create account",
		"nav.logout":            "Sign out",
		"nav.language":          "Español",
		"page.welcome":          "Hello, %s",
		"page.register_success": "Your account was created. Check your email to activate it.",
		"page.forgot_password":  "Contact support to reset your password.",
		"page.activated":        "Your account is active. You can sign in now.",
		"page.not_found.title":  "Page not found",
		"page.not_found.body":   "The page you are looking for does not exist.",

		"error.invalid_credentials": "Incorrect email or password.",
		"error.not_verified":        "Your account has not been activated yet.",
		"error.blocked":             "Your account is blocked. Contact support.",
		"error.weak_password":       "Passwords need at least 8 characters with an uppercase letter, a lowercase letter and a number.",
		"error.user_exists":         "An account with that email already exists.",
		"error.invalid_form":        "Please check the form.",
		"error.invalid_activation":  "The activation link is not valid.",
		"error.unexpected":          "Something went wrong.",
	},
}

// message returns the text of key in locale, falling back to the default
// locale and then to the key.
func message(locale routing.Locale, key string) string {
	if text, ok := messages[locale][key]; ok {
		return text
	}
	if text, ok := messages[routing.DefaultLocale][key]; ok {
		return text
	}
	return key
}

// errorMessage returns the text of an error code, or "" for unknown codes.
func errorMessage(locale routing.Locale, code string) string {
	if code == "" {
		return ""
	}
	key := "error." + code
	if _, ok := messages[routing.DefaultLocale][key]; !ok {
		return ""
	}
	return message(locale, key)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, errors.ErrInvalidCredentials):
		return errCodeInvalidCredentials
	case errors.Is(err, errors.ErrUserNotVerified):
		return errCodeNotVerified
	case errors.Is(err, errors.ErrUserBlocked):
		return errCodeBlocked
	case errors.Is(err, errors.ErrWeakPassword):
		return errCodeWeakPassword
	case errors.Is(err, errors.ErrUserExists):
		return errCodeUserExists
	case errors.Is(err, errors.ErrInvalidInput):
		return errCodeInvalidForm
	case errors.Is(err, errors.ErrInvalidActivationCode):
		return errCodeInvalidActivation
	default:
		return errCodeUnexpected
	}
}
