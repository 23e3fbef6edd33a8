package documents

import "github.com/JaimeStill/pdfbridge/pkg/enum"

// Permissions is the access level granted by the password used to open a document.
type Permissions string

const (
	PermissionsNone  Permissions = "none"
	PermissionsUser  Permissions = "user"
	PermissionsOwner Permissions = "owner"
)

var permissions = []Permissions{PermissionsNone, PermissionsUser, PermissionsOwner}

// ParsePermissions maps s to a known level, defaulting to PermissionsNone.
func ParsePermissions(s string) Permissions {
	return enum.Parse(s, permissions, PermissionsNone)
}

func (p *Permissions) UnmarshalJSON(data []byte) error {
	*p = enum.Unmarshal(data, permissions, PermissionsNone)
	return nil
}

// EncryptAlgo is the encryption algorithm protecting a document.
type EncryptAlgo string

const (
	EncryptRC4    EncryptAlgo = "rc4"
	EncryptAES128 EncryptAlgo = "aes128"
	EncryptAES256 EncryptAlgo = "aes256"
	EncryptNone   EncryptAlgo = "noEncryptAlgo"
)

var encryptAlgos = []EncryptAlgo{EncryptRC4, EncryptAES128, EncryptAES256, EncryptNone}

// ParseEncryptAlgo maps s to a known algorithm, defaulting to EncryptNone.
func ParseEncryptAlgo(s string) EncryptAlgo {
	return enum.Parse(s, encryptAlgos, EncryptNone)
}

func (a *EncryptAlgo) UnmarshalJSON(data []byte) error {
	*a = enum.Unmarshal(data, encryptAlgos, EncryptNone)
	return nil
}
