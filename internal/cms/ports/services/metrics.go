package services

// Metrics учитывает события сервиса.
type Metrics interface {
	RegistrationFinished()

	RegistrationRejected(reason string)

	EmailSent(kind string)

	EmailFailed(kind string)

	LoginFailed(collection string)
}
