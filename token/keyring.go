package token

import (
	"fmt"

	"github.com/jrsteele09/go-care-portal/apps"
	"github.com/jrsteele09/go-care-portal/internal/errors"
)

// SecretSource provides the signing secret of each application.
type SecretSource interface {
	GetSigningSecret(app apps.App) string
}

// Keyring holds one codec per application. It is built once at startup and
// only read afterwards.
type Keyring struct {
	codecs map[apps.App]*Codec
}

func NewKeyring(secrets SecretSource) *Keyring {
	k := &Keyring{codecs: make(map[apps.App]*Codec, len(apps.All()))}
	for _, app := range apps.All() {
		k.codecs[app] = NewCodec(app, secrets.GetSigningSecret(app))
	}
	return k
}

func (k *Keyring) Codec(app apps.App) (*Codec, error) {
	codec, ok := k.codecs[app]
	if !ok {
		return nil, fmt.Errorf("%q: %w", app, errors.ErrUnknownApp)
	}
	return codec, nil
}
