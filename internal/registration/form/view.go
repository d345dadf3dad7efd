package form

import (
	"fmt"
	"strings"

	"simplylife/internal/registration/schema"
	"simplylife/pkg/i18n"
)

// Field - отображаемое поле формы.
type Field struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Hint     string
	Error    string
	Required bool
	ReadOnly bool
}

// View - отображение состояния формы.
type View struct {
	Title          string
	Description    string
	Fields         []Field
	ImagePreview   string
	SubmitLabel    string
	SubmitDisabled bool
	Alert          string

	Success            bool
	SuccessTitle       string
	SuccessDescription string
	SuccessBody        string
}

// Render строит отображение из состояния. Чистая функция.
// После успешной отправки поля не отображаются.
func Render(st State) View {
	loc := st.Props.Locale
	t := func(key i18n.Key) string { return i18n.T(loc, key) }

	if st.Succeeded {
		return View{
			Success:            true,
			SuccessTitle:       t(i18n.SuccessTitle),
			SuccessDescription: t(i18n.SuccessDescription),
			SuccessBody:        t(i18n.SuccessBody),
		}
	}

	v := st.Values
	passwordType := "password"
	if st.PasswordVisible {
		passwordType = "text"
	}
	var imageName string
	if v.Image != nil {
		imageName = v.Image.Filename
	}

	fields := []Field{
		{Name: schema.FieldEmail, Label: t(i18n.LabelEmail), Type: "email", Value: v.Email, Required: true, ReadOnly: true},
		{Name: schema.FieldPassword, Label: t(i18n.LabelPassword), Type: passwordType, Value: v.Password, Hint: t(i18n.PasswordHint), Required: true},
		{Name: schema.FieldLastname, Label: t(i18n.LabelLastname), Type: "text", Value: v.Lastname, Required: true},
		{Name: schema.FieldFirstname, Label: t(i18n.LabelFirstname), Type: "text", Value: v.Firstname, Required: true},
		{Name: schema.FieldCabinet, Label: t(i18n.LabelCabinet), Type: "text", Value: v.Cabinet, Required: true},
		{Name: schema.FieldAdressCabinet, Label: t(i18n.LabelAdressCabinet), Type: "text", Value: v.AdressCabinet, Required: schema.RequiresAdressCabinet(st.Props.Role)},
		{Name: schema.FieldPhone, Label: t(i18n.LabelPhone), Type: "tel", Value: v.Phone, Required: true},
		{Name: schema.FieldBirthday, Label: t(i18n.LabelBirthday), Type: "date", Value: v.Birthday, Required: true},
		{Name: schema.FieldEntryDate, Label: t(i18n.LabelEntryDate), Type: "date", Value: v.EntryDate, Hint: t(i18n.EntryDateHint), Required: true},
		{Name: schema.FieldRGPD, Label: t(i18n.LabelRGPD), Type: "radio", Value: v.RGPD, Required: true},
		{Name: schema.FieldImage, Label: t(i18n.LabelImage), Type: "file", Value: imageName, Hint: t(i18n.ImageHint)},
	}
	for i := range fields {
		fields[i].Error = st.Errors.First(fields[i].Name)
	}

	submitLabel := t(i18n.SubmitLabel)
	if st.Submitting {
		submitLabel = t(i18n.SubmittingLabel)
	}

	return View{
		Title:          t(i18n.FormTitle),
		Description:    t(i18n.FormDescription),
		Fields:         fields,
		ImagePreview:   st.ImagePreview,
		SubmitLabel:    submitLabel,
		SubmitDisabled: st.Submitting,
		Alert:          st.Failure,
	}
}

// String выводит отображение в текстовом виде для терминала.
func (v View) String() string {
	var b strings.Builder

	if v.Success {
		fmt.Fprintf(&b, "%s\n%s\n\n%s\n", v.SuccessTitle, v.SuccessDescription, v.SuccessBody)
		return b.String()
	}

	fmt.Fprintf(&b, "%s\n%s\n\n", v.Title, v.Description)
	for _, f := range v.Fields {
		marker := ""
		if f.Required {
			marker = " *"
		}
		value := f.Value
		if f.Type == "password" && value != "" {
			value = strings.Repeat("•", len([]rune(value)))
		}
		fmt.Fprintf(&b, "%s%s: %s\n", f.Label, marker, value)
		if f.Error != "" {
			fmt.Fprintf(&b, "  ! %s\n", f.Error)
		}
	}
	if v.Alert != "" {
		fmt.Fprintf(&b, "\n%s\n", v.Alert)
	}
	fmt.Fprintf(&b, "\n[%s]\n", v.SubmitLabel)
	return b.String()
}
