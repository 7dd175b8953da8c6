package service

//go:generate mockgen -source=sync.go -destination=mocks/mock_source.go -package=mocks

import (
	"context"
	"strings"

	"github.com/jbweber/homelab/territoire/internal/cache"
	"github.com/jbweber/homelab/territoire/internal/datastore"
	"github.com/jbweber/homelab/territoire/internal/domain"
	"github.com/jbweber/homelab/territoire/internal/logger"
	"github.com/jbweber/homelab/territoire/internal/metrics"
	"github.com/jbweber/homelab/territoire/internal/repository"
)

// Source provides the reference list of départements.
type Source interface {
	FetchDepartements(ctx context.Context) ([]domain.ExternalDepartement, error)
}

// SyncReport counts what a synchronisation did. Total is the number of
// distinct codes received.
type SyncReport struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Ignored int `json:"ignored"`
	Total   int `json:"total"`
}

// SyncService aligns the stored départements with a Source.
type SyncService struct {
	ds           *datastore.Datastore
	departements repository.DepartementRepository
	source       Source
	cache        cache.Cache
	metrics      *metrics.Metrics
	log          *logger.Logger
}

func NewSyncService(
	ds *datastore.Datastore,
	departements repository.DepartementRepository,
	source Source,
	c cache.Cache,
	m *metrics.Metrics,
	log *logger.Logger,
) *SyncService {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &SyncService{
		ds:           ds,
		departements: departements,
		source:       source,
		cache:        c,
		metrics:      m,
		log:          log,
	}
}

// Sync inserts unknown codes and renames départements whose name differs
// from the reference. A stored name is never replaced by an empty one.
func (s *SyncService) Sync(ctx context.Context) (SyncReport, error) {
	incoming, err := s.source.FetchDepartements(ctx)
	if err != nil {
		s.metrics.IncrementSyncRuns("failure")
		return SyncReport{}, domain.Internal(err, "récupération des départements impossible")
	}

	entries := s.dedupe(incoming)
	report := SyncReport{Total: len(entries)}
	var renamed []string

	err = s.ds.InTx(ctx, func(ctx context.Context) error {
		existing, err := s.departements.FindAll(ctx)
		if err != nil {
			return classify(err, "départements")
		}
		byCode := make(map[string]domain.Departement, len(existing))
		for _, d := range existing {
			byCode[domain.NormalizeCode(d.Code)] = d
		}

		for _, e := range entries {
			current, ok := byCode[e.Code]
			if !ok {
				if _, err := s.departements.Save(ctx, domain.Departement{Code: e.Code, Nom: domain.StringPtr(e.Nom)}); err != nil {
					return classify(err, "Département avec le code %s", e.Code)
				}
				report.Created++
				continue
			}

			stored := strings.TrimSpace(domain.StringValue(current.Nom))
			if e.Nom == "" || e.Nom == stored {
				report.Ignored++
				continue
			}

			current.Nom = domain.StringPtr(e.Nom)
			if _, err := s.departements.Save(ctx, current); err != nil {
				return classify(err, "Département avec le code %s", e.Code)
			}
			renamed = append(renamed, current.Code)
			report.Updated++
		}
		return nil
	})
	if err != nil {
		s.metrics.IncrementSyncRuns("failure")
		return SyncReport{}, err
	}

	for i := 0; i < report.Created; i++ {
		s.metrics.IncrementDepartementsCreated()
	}
	s.metrics.IncrementSyncRuns("success")
	invalidateStats(ctx, s.cache, s.log, renamed...)
	s.log.Info("departements synchronised",
		"created", report.Created, "updated", report.Updated, "ignored", report.Ignored, "total", report.Total)
	return report, nil
}

// dedupe trims and uppercases codes, drops entries without a code and keeps
// the last entry of each code, in first-seen order.
func (s *SyncService) dedupe(incoming []domain.ExternalDepartement) []domain.ExternalDepartement {
	index := make(map[string]int, len(incoming))
	out := make([]domain.ExternalDepartement, 0, len(incoming))
	for _, e := range incoming {
		e.Code = domain.NormalizeCode(e.Code)
		e.Nom = strings.TrimSpace(e.Nom)
		if e.Code == "" {
			continue
		}
		if i, dup := index[e.Code]; dup {
			s.log.Warn("duplicate code in reference list, keeping the last entry", "code", e.Code)
			out[i] = e
			continue
		}
		index[e.Code] = len(out)
		out = append(out, e)
	}
	return out
}
