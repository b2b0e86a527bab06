package domain

type User struct {
	UID   string `json:"uid"`
	Login string `json:"login"`
}
