package subsonic

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
)

const saltBytes = 16

// Credentials is the fixed per-process authentication bundle. Build it once
// with NewCredentials and share it read-only.
type Credentials struct {
	Username string
	Salt     string
	Token    string
}

// NewCredentials generates a random salt and derives md5(password+salt).
func NewCredentials(username, password string) (Credentials, error) {
	if username == "" || password == "" {
		return Credentials{}, errors.New("subsonic: username and password are required")
	}
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return Credentials{}, fmt.Errorf("subsonic: generate salt: %w", err)
	}
	return credentialsWithSalt(username, password, hex.EncodeToString(buf)), nil
}

func credentialsWithSalt(username, password, salt string) Credentials {
	sum := md5.Sum([]byte(password + salt))
	return Credentials{
		Username: username,
		Salt:     salt,
		Token:    hex.EncodeToString(sum[:]),
	}
}

func (c Credentials) apply(params url.Values, version, client string) {
	params.Set("u", c.Username)
	params.Set("t", c.Token)
	params.Set("s", c.Salt)
	params.Set("v", version)
	params.Set("c", client)
	params.Set("f", "json")
}
