package i18n

// Key - идентификатор сообщения в каталоге.
type Key string

// Ключи сообщений формы регистрации и API.
const (
	EmailInvalid          Key = "email_invalid"
	IDRequired            Key = "id_required"
	RoleRequired          Key = "role_required"
	PasswordTooShort      Key = "password_too_short"
	PasswordNoLetter      Key = "password_no_letter"
	PasswordNoDigit       Key = "password_no_digit"
	LastnameRequired      Key = "lastname_required"
	FirstnameRequired     Key = "firstname_required"
	CabinetRequired       Key = "cabinet_required"
	AdressCabinetRequired Key = "adress_cabinet_required"
	BirthdayRequired      Key = "birthday_required"
	EntryDateRequired     Key = "entry_date_required"
	RGPDInvalid           Key = "rgpd_invalid"
	PhoneTooShort         Key = "phone_too_short"
	ImageTooLarge         Key = "image_too_large"

	SubmissionFailed Key = "submission_failed"
	UploadTooLarge   Key = "upload_too_large"

	FormTitle          Key = "form_title"
	FormDescription    Key = "form_description"
	RequiredLegend     Key = "required_legend"
	SubmitLabel        Key = "submit_label"
	SubmittingLabel    Key = "submitting_label"
	SuccessTitle       Key = "success_title"
	SuccessDescription Key = "success_description"
	SuccessBody        Key = "success_body"
	PasswordHint       Key = "password_hint"
	EntryDateHint      Key = "entry_date_hint"
	ImageHint          Key = "image_hint"

	LabelEmail         Key = "label_email"
	LabelPassword      Key = "label_password"
	LabelLastname      Key = "label_lastname"
	LabelFirstname     Key = "label_firstname"
	LabelCabinet       Key = "label_cabinet"
	LabelAdressCabinet Key = "label_adress_cabinet"
	LabelPhone         Key = "label_phone"
	LabelBirthday      Key = "label_birthday"
	LabelEntryDate     Key = "label_entry_date"
	LabelRGPD          Key = "label_rgpd"
	LabelImage         Key = "label_image"

	InviteSubject         Key = "invite_subject"
	InviteBody            Key = "invite_body"
	RegistrationSubject   Key = "registration_subject"
	RegistrationBody      Key = "registration_body"
	ForgotPasswordSubject Key = "forgot_password_subject"
	ForgotPasswordBody    Key = "forgot_password_body"
)

type translation struct {
	fr string
	en string
}

var translations = map[Key]translation{
	EmailInvalid:          {"Entrez une adresse mail valide", "Enter a valid email address"},
	IDRequired:            {"L'identifiant est requis", "The identifier is required"},
	RoleRequired:          {"Le rôle est requis", "The role is required"},
	PasswordTooShort:      {"Le mot de passe doit comporter au moins 10 caractères", "The password must be at least 10 characters long"},
	PasswordNoLetter:      {"Le mot de passe doit contenir au moins une lettre", "The password must contain at least one letter"},
	PasswordNoDigit:       {"Le mot de passe doit contenir au moins un chiffre", "The password must contain at least one digit"},
	LastnameRequired:      {"Le nom est requis", "The last name is required"},
	FirstnameRequired:     {"Le prénom est requis", "The first name is required"},
	CabinetRequired:       {"Le nom du cabinet est requis", "The firm name is required"},
	AdressCabinetRequired: {"L'adresse du cabinet est requise pour les indépendants", "The firm address is required for independents"},
	BirthdayRequired:      {"La date d'anniversaire est requise", "The birth date is required"},
	EntryDateRequired:     {"La date d'entrée est requise", "The entry date is required"},
	RGPDInvalid:           {"Choisissez d'accepter ou de refuser", "Choose to accept or refuse"},
	PhoneTooShort:         {"Le numéro de téléphone doit comporter au moins 10 caractères", "The phone number must be at least 10 characters long"},
	ImageTooLarge:         {"Fichier trop lourd (%s Mo). Maximum autorisé : 50 Mo", "File too large (%s MB). Maximum allowed: 50 MB"},

	SubmissionFailed: {"Une erreur inconnue est survenue, contactez le support.", "An unknown error occurred, please contact support."},
	UploadTooLarge:   {"Fichier trop lourd. Maximum autorisé 50 Mo.", "File too large. Maximum allowed 50 MB."},

	FormTitle:          {"Complétez votre inscription", "Complete your registration"},
	FormDescription:    {"Veuillez remplir vos informations pour finaliser votre compte", "Please fill in your details to finalize your account"},
	RequiredLegend:     {"Champs obligatoires", "Required fields"},
	SubmitLabel:        {"Finaliser l'inscription", "Complete registration"},
	SubmittingLabel:    {"Envoi en cours...", "Sending..."},
	SuccessTitle:       {"Inscription terminée !", "Registration complete!"},
	SuccessDescription: {"Votre compte a été créé avec succès.", "Your account has been created successfully."},
	SuccessBody:        {"Vous pouvez maintenant accéder l'application mobile Simply Life avec vos identifiants.", "You can now sign in to the Simply Life mobile app with your credentials."},
	PasswordHint:       {"Au moins 10 caractères", "At least 10 characters"},
	EntryDateHint:      {"Date approximative si vous ne connaissez plus la date exacte", "Approximate date if you no longer know the exact one"},
	ImageHint:          {"L'image ne doit pas dépasser 50 Mo", "The image must not exceed 50 MB"},

	LabelEmail:         {"Email", "Email"},
	LabelPassword:      {"Mot de passe", "Password"},
	LabelLastname:      {"Nom", "Last name"},
	LabelFirstname:     {"Prénom", "First name"},
	LabelCabinet:       {"Nom de votre cabinet", "Firm name"},
	LabelAdressCabinet: {"Adresse de votre cabinet", "Firm address"},
	LabelPhone:         {"Numéro de téléphone", "Phone number"},
	LabelBirthday:      {"Date de naissance", "Birth date"},
	LabelEntryDate:     {"Date d'entrée au Groupe Valorem", "Groupe Valorem entry date"},
	LabelRGPD:          {"Consentement des données (RGPD)", "Data consent (GDPR)"},
	LabelImage:         {"Photo de profil", "Profile picture"},

	InviteSubject:         {"Finalisez votre inscription Simply Life", "Complete your Simply Life registration"},
	InviteBody:            {"<p>Bonjour,</p><p>Finalisez votre inscription : <a href=\"%s\">%s</a></p>", "<p>Hello,</p><p>Complete your registration: <a href=\"%s\">%s</a></p>"},
	RegistrationSubject:   {"Bienvenue sur Simply Life", "Welcome to Simply Life"},
	RegistrationBody:      {"<p>Bonjour %s,</p><p>Votre compte Simply Life est prêt.</p>", "<p>Hello %s,</p><p>Your Simply Life account is ready.</p>"},
	ForgotPasswordSubject: {"Réinitialisation de votre mot de passe", "Reset your password"},
	ForgotPasswordBody:    {"<p>Utilisez ce code pour réinitialiser votre mot de passe : <strong>%s</strong></p><p>Il expire le %s.</p>", "<p>Use this code to reset your password: <strong>%s</strong></p><p>It expires on %s.</p>"},
}
