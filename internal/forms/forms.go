// Package forms decodes and validates the HTML forms posted by the browser.
package forms

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/diewo77/go-blogs/internal/models"
	"github.com/diewo77/go-blogs/validation"
)

// MaxMemory bounds the part of a multipart body held in memory; the rest spills to temp files.
const MaxMemory = 32 << 20

const (
	maxTitle    = 255
	maxCategory = 255
	maxName     = 255
	maxEmail    = 255
)

func parse(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(MaxMemory)
	}
	return r.ParseForm()
}

// checkbox follows browser semantics: an unchecked box is absent from the body.
func checkbox(r *http.Request, name string) bool {
	v := strings.ToLower(r.PostFormValue(name))
	return v != "" && v != "false" && v != "0"
}

// NewsForm is the add/edit news form.
type NewsForm struct {
	Title        string
	Content      string
	IsPrivate    bool
	CategoryName string
	DueDateRaw   string
	DueDate      *time.Time // set by Validate
	File         *multipart.FileHeader
}

// DecodeNewsForm reads the form from a urlencoded or multipart body.
func DecodeNewsForm(r *http.Request) (*NewsForm, error) {
	if err := parse(r); err != nil {
		return nil, err
	}
	f := &NewsForm{
		Title:        strings.TrimSpace(r.PostFormValue("title")),
		Content:      r.PostFormValue("content"),
		IsPrivate:    checkbox(r, "is_private"),
		CategoryName: strings.TrimSpace(r.PostFormValue("category_name")),
		DueDateRaw:   strings.TrimSpace(r.PostFormValue("due_date")),
	}
	if r.MultipartForm != nil {
		_, fh, err := r.FormFile("file")
		switch {
		case err == nil && fh.Filename != "":
			f.File = fh
		case err != nil && !errors.Is(err, http.ErrMissingFile):
			return nil, err
		}
	}
	return f, nil
}

func (f *NewsForm) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("title", f.Title, v)
	validation.MaxLength("title", f.Title, maxTitle, v)
	validation.MaxLength("category_name", f.CategoryName, maxCategory, v)
	f.DueDate = validation.Date("due_date", f.DueDateRaw, v)
	return v
}

// NewsFormFrom pre-populates the edit form from a stored item.
func NewsFormFrom(n *models.News) *NewsForm {
	f := &NewsForm{
		Title:        n.Title,
		Content:      n.Content,
		IsPrivate:    n.IsPrivate,
		CategoryName: n.CategoryName(),
		DueDate:      n.DueDate,
	}
	if n.DueDate != nil {
		f.DueDateRaw = n.DueDate.Format(validation.DateLayout)
	}
	return f
}

// RegisterForm is the sign-up form. Password equality is checked by the handler
// so the mismatch can be reported as a page message.
type RegisterForm struct {
	Name          string
	Email         string
	Password      string
	PasswordAgain string
	About         string
}

func DecodeRegisterForm(r *http.Request) (*RegisterForm, error) {
	if err := parse(r); err != nil {
		return nil, err
	}
	return &RegisterForm{
		Name:          strings.TrimSpace(r.PostFormValue("name")),
		Email:         strings.TrimSpace(r.PostFormValue("email")),
		Password:      r.PostFormValue("password"),
		PasswordAgain: r.PostFormValue("password_again"),
		About:         r.PostFormValue("about"),
	}, nil
}

func (f *RegisterForm) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("email", f.Email, v)
	validation.Email("email", f.Email, v)
	validation.MaxLength("email", f.Email, maxEmail, v)
	validation.Required("password", f.Password, v)
	validation.Required("password_again", f.PasswordAgain, v)
	validation.Required("name", f.Name, v)
	validation.MaxLength("name", f.Name, maxName, v)
	return v
}

// PasswordsMatch reports whether both password fields agree.
func (f *RegisterForm) PasswordsMatch() bool {
	return f.Password == f.PasswordAgain
}

type LoginForm struct {
	Email      string
	Password   string
	RememberMe bool
}

func DecodeLoginForm(r *http.Request) (*LoginForm, error) {
	if err := parse(r); err != nil {
		return nil, err
	}
	return &LoginForm{
		Email:      strings.TrimSpace(r.PostFormValue("email")),
		Password:   r.PostFormValue("password"),
		RememberMe: checkbox(r, "remember_me"),
	}, nil
}

func (f *LoginForm) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("email", f.Email, v)
	validation.Email("email", f.Email, v)
	validation.Required("password", f.Password, v)
	return v
}
