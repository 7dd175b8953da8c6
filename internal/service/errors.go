package service

import (
	"errors"
	"fmt"

	"github.com/jbweber/homelab/territoire/internal/domain"
	"github.com/jbweber/homelab/territoire/internal/repository"
)

// classify turns a repository failure into a domain error. what names the
// resource in the client-facing message. Errors that are already classified
// pass through.
func classify(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}

	what := fmt.Sprintf(format, args...)
	var out *domain.Error
	switch {
	case errors.Is(err, repository.ErrNotFound):
		out = domain.NotFound("%s introuvable", what)
	case errors.Is(err, repository.ErrDuplicate):
		out = domain.AlreadyExists("%s existe déjà", what)
	case errors.Is(err, repository.ErrInUse):
		out = domain.DeleteForbidden("%s est encore référencé", what)
	case errors.Is(err, repository.ErrInvalidSort):
		out = domain.InvalidData("critère de tri invalide pour %s", what)
	case errors.Is(err, repository.ErrInvalidEntity):
		out = domain.ConstraintViolation("%s ne respecte pas les contraintes", what)
	default:
		return domain.Internal(err, "%s: erreur inattendue", what)
	}
	out.Err = err
	return out
}

func validatePageRequest(req *repository.PageRequest, defaultSort string, keys []string) error {
	if req.Page < 0 || req.Page > repository.MaxPage {
		return domain.InvalidData("le numéro de page doit être compris entre 0 et %d: %d", repository.MaxPage, req.Page)
	}
	if req.Size < 1 || req.Size > repository.MaxPageSize {
		return domain.InvalidData("la taille de page doit être comprise entre 1 et %d: %d", repository.MaxPageSize, req.Size)
	}
	if req.Sort == "" {
		req.Sort = defaultSort
	}
	for _, k := range keys {
		if k == req.Sort {
			return nil
		}
	}
	return domain.InvalidData("critère de tri inconnu %q, valeurs acceptées: %v", req.Sort, keys)
}

func validateRange(min, max int) error {
	if min > max {
		return domain.InvalidData("la population minimale (%d) dépasse la population maximale (%d)", min, max)
	}
	return nil
}
