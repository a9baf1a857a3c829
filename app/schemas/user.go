package schemas

import "pubboard/app/models"

// User builds the registration/update schema. isImage decides whether a
// photo payload decodes as a supported base64 image.
func User(isImage func(string) bool) Schema {
	return Schema{Fields: []Field{
		{Name: "fullname", Required: true, MaxLen: 128},
		{Name: "email", Required: true, Email: true},
		{Name: "password", Required: true},
		{Name: "photo", Check: isImage, CheckMsg: "Not a valid image."},
	}}
}

func Login() Schema {
	return Schema{Fields: []Field{
		{Name: "email", Required: true, Email: true},
		{Name: "password", Required: true},
	}}
}

// UserOut is the serialized user; password is write-only and never leaves.
type UserOut struct {
	ID       uint    `json:"id"`
	Fullname string  `json:"fullname"`
	Email    string  `json:"email"`
	Photo    *string `json:"photo"`
}

func DumpUser(u *models.User) UserOut {
	return UserOut{ID: u.ID, Fullname: u.Fullname, Email: u.Email, Photo: u.Photo}
}

func DumpUsers(users []models.User) []UserOut {
	out := make([]UserOut, 0, len(users))
	for i := range users {
		out = append(out, DumpUser(&users[i]))
	}
	return out
}
