package dto

type HashPasswordInput struct {
	Password string `json:"password"`
}

type HashPasswordOutput struct {
	Hash string `json:"hash"`
}

type VerifyPasswordInput struct {
	Password string `json:"password"`
	Hash     string `json:"hash"`
}

type VerifyPasswordOutput struct {
	Matched     bool `json:"matched"`
	NeedsRehash bool `json:"needs_rehash"`
}
