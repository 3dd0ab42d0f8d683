package model

// Credential is what the order store needs to authenticate a user.
type Credential struct {
	Server   string `json:"server"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Complete reports whether every field is filled in.
func (c Credential) Complete() bool {
	return c.Server != "" && c.Username != "" && c.Password != ""
}

// Forget drops the user part and keeps the server address.
func (c Credential) Forget() Credential {
	return Credential{Server: c.Server}
}
