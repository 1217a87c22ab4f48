package routing

import "github.com/jrsteele09/go-care-portal/apps"

// Key identifies an abstract route independently of its localized spelling.
type Key string

const (
	KeyHome Key = "home"

	KeyHealthHome            Key = "health.home"
	KeyHealthLogin           Key = "health.login"
	KeyHealthRegister        Key = "health.register"
	KeyHealthRegisterSuccess Key = "health.registerSuccess"
	KeyHealthForgotPassword  Key = "health.forgotPassword"
	KeyHealthActivate        Key = "health.activate"
	KeyHealthProfile         Key = "health.profile"
	KeyHealthHistory         Key = "health.history"
	KeyHealthAppointments    Key = "health.appointments"

	KeyMedicalHome            Key = "medical.home"
	KeyMedicalLogin           Key = "medical.login"
	KeyMedicalRegister        Key = "medical.register"
	KeyMedicalRegisterSuccess Key = "medical.registerSuccess"
	KeyMedicalForgotPassword  Key = "medical.forgotPassword"
	KeyMedicalActivate        Key = "medical.activate"
	KeyMedicalProfile         Key = "medical.profile"
	KeyMedicalPatients        Key = "medical.patients"
	KeyMedicalPatientRecord   Key = "medical.patientRecord"
	KeyMedicalSchedule        Key = "medical.schedule"
)

// AppKeys names the routes every application must provide.
type AppKeys struct {
	Home            Key
	Login           Key
	Register        Key
	RegisterSuccess Key
	ForgotPassword  Key
	Activate        Key
	Dashboard       Key
}

var appKeys = map[apps.App]AppKeys{
	apps.HealthPlatform: {
		Home:            KeyHealthHome,
		Login:           KeyHealthLogin,
		Register:        KeyHealthRegister,
		RegisterSuccess: KeyHealthRegisterSuccess,
		ForgotPassword:  KeyHealthForgotPassword,
		Activate:        KeyHealthActivate,
		Dashboard:       KeyHealthProfile,
	},
	apps.MedicalPortal: {
		Home:            KeyMedicalHome,
		Login:           KeyMedicalLogin,
		Register:        KeyMedicalRegister,
		RegisterSuccess: KeyMedicalRegisterSuccess,
		ForgotPassword:  KeyMedicalForgotPassword,
		Activate:        KeyMedicalActivate,
		Dashboard:       KeyMedicalProfile,
	},
}

func KeysFor(app apps.App) AppKeys {
	return appKeys[app]
}

// referencedKeys lists every key the code links to. Loading a table without
// one of them fails.
func referencedKeys() []Key {
	keys := []Key{KeyHome, KeyHealthHistory, KeyHealthAppointments, KeyMedicalPatients, KeyMedicalPatientRecord, KeyMedicalSchedule}
	for _, app := range apps.All() {
		k := appKeys[app]
		keys = append(keys, k.Home, k.Login, k.Register, k.RegisterSuccess, k.ForgotPassword, k.Activate, k.Dashboard)
	}
	return keys
}
