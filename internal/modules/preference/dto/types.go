package dto

import "folio/internal/modules/preference/domain"

type PreferenceOutput struct {
	Mode  domain.Mode
	Found bool
}

type SaveInput struct {
	Mode string
}
