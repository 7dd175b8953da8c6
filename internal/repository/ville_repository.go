package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jbweber/homelab/territoire/internal/datastore"
	"github.com/jbweber/homelab/territoire/internal/domain"
)

// VilleRepository defines domain-specific operations for villes. Operations
// keyed by département code return an empty result for an unknown code.
type VilleRepository interface {
	PagingRepository[domain.Ville, int64]

	// SaveAll saves every ville in a single transaction
	SaveAll(ctx context.Context, villes []domain.Ville) ([]domain.Ville, error)

	// FindByNom matches the whole name, ignoring case
	FindByNom(ctx context.Context, nom string) (domain.Ville, error)
	FindByNomContaining(ctx context.Context, fragment string) ([]domain.Ville, error)
	FindByNomStartingWith(ctx context.Context, prefix string) ([]domain.Ville, error)
	FindByPopulationGreaterThan(ctx context.Context, min int) ([]domain.Ville, error)
	FindByPopulationBetween(ctx context.Context, min, max int) ([]domain.Ville, error)

	FindByDepartementID(ctx context.Context, departementID int64) ([]domain.Ville, error)
	FindByDepartementIDs(ctx context.Context, departementIDs []int64) (map[int64][]domain.Ville, error)
	FindByDepartementCode(ctx context.Context, code string) ([]domain.Ville, error)
	FindByDepartementAndMinPopulation(ctx context.Context, code string, min int) ([]domain.Ville, error)
	FindByDepartementAndPopulationRange(ctx context.Context, code string, min, max int) ([]domain.Ville, error)
	FindTopNByDepartement(ctx context.Context, code string, n int) ([]domain.Ville, error)
	// FindMostPopulated returns ErrNotFound when the département has no villes
	FindMostPopulated(ctx context.Context, code string) (domain.Ville, error)
	CountByDepartement(ctx context.Context, code string) (int64, error)
	SumPopulationByDepartement(ctx context.Context, code string) (int64, error)
}

const villeSelect = `
	SELECT v.id, v.nom, v.nb_habitants, d.id, d.code, d.nom
	FROM ville v
	JOIN departement d ON d.id = v.id_dept`

var villeSorts = map[string]string{
	"id":          "v.id ASC",
	"nom":         "v.nom ASC, v.id ASC",
	"nbHabitants": "v.nb_habitants DESC, v.id ASC",
}

// VilleSortKeys lists the accepted paging sort keys.
func VilleSortKeys() []string {
	return []string{"id", "nom", "nbHabitants"}
}

// villeRepositoryImpl implements VilleRepository
type villeRepositoryImpl struct {
	sqlRepository
}

// NewVilleRepository creates a new ville repository
func NewVilleRepository(ds *datastore.Datastore, cache *PreparedStatementCache) VilleRepository {
	return &villeRepositoryImpl{sqlRepository: newSQLRepository(ds, cache)}
}

// Save creates or updates a ville and returns it as stored, with its
// département reference filled from the database
func (r *villeRepositoryImpl) Save(ctx context.Context, v domain.Ville) (domain.Ville, error) {
	if v.Departement.ID == 0 {
		return domain.Ville{}, fmt.Errorf("ville %s has no departement: %w", v.Nom, ErrInvalidEntity)
	}

	what := fmt.Sprintf("ville with nom %s", v.Nom)
	id := v.ID
	if id == 0 {
		newID, err := r.insert(ctx, `INSERT INTO ville (nom, nb_habitants, id_dept) VALUES (?, ?, ?)`,
			v.Nom, v.NbHabitants, v.Departement.ID)
		if err != nil {
			return domain.Ville{}, translateWriteError(what, err)
		}
		id = newID
	} else {
		res, err := r.exec(ctx, `
			UPDATE ville
			SET nom = ?, nb_habitants = ?, id_dept = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`,
			v.Nom, v.NbHabitants, v.Departement.ID, v.ID)
		if err != nil {
			return domain.Ville{}, translateWriteError(what, err)
		}
		if err := affectedOrNotFound(res, fmt.Sprintf("ville with ID %d", v.ID)); err != nil {
			return domain.Ville{}, err
		}
	}

	return r.FindByID(ctx, id)
}

// SaveAll saves villes in order inside one transaction
func (r *villeRepositoryImpl) SaveAll(ctx context.Context, villes []domain.Ville) ([]domain.Ville, error) {
	saved := make([]domain.Ville, 0, len(villes))
	err := r.ds.InTx(ctx, func(ctx context.Context) error {
		for _, v := range villes {
			s, err := r.Save(ctx, v)
			if err != nil {
				return err
			}
			saved = append(saved, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *villeRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.Ville, error) {
	v, err := r.findOne(ctx, villeSelect+` WHERE v.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Ville{}, fmt.Errorf("ville with ID %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Ville{}, fmt.Errorf("failed to find ville: %w", err)
	}
	return v, nil
}

func (r *villeRepositoryImpl) FindByNom(ctx context.Context, nom string) (domain.Ville, error) {
	v, err := r.findOne(ctx, villeSelect+` WHERE casefold(v.nom) = casefold(?)`, nom)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Ville{}, fmt.Errorf("ville with nom %s: %w", nom, ErrNotFound)
	}
	if err != nil {
		return domain.Ville{}, fmt.Errorf("failed to find ville by nom: %w", err)
	}
	return v, nil
}

func (r *villeRepositoryImpl) FindAll(ctx context.Context) ([]domain.Ville, error) {
	return r.list(ctx, villeSelect+` ORDER BY v.id`)
}

func (r *villeRepositoryImpl) FindAllPaged(ctx context.Context, req PageRequest) (Page[domain.Ville], error) {
	order, ok := villeSorts[req.Sort]
	if !ok {
		return Page[domain.Ville]{}, fmt.Errorf("ville sort %q: %w", req.Sort, ErrInvalidSort)
	}

	total, err := r.Count(ctx)
	if err != nil {
		return Page[domain.Ville]{}, err
	}

	content, err := r.list(ctx, villeSelect+` ORDER BY `+order+` LIMIT ? OFFSET ?`, req.Size, req.Offset())
	if err != nil {
		return Page[domain.Ville]{}, err
	}
	return NewPage(content, req, total), nil
}

func (r *villeRepositoryImpl) FindByNomContaining(ctx context.Context, fragment string) ([]domain.Ville, error) {
	return r.list(ctx, villeSelect+` WHERE casefold(v.nom) LIKE ? ESCAPE '\' ORDER BY v.id`, containsPattern(fragment))
}

// FindByNomStartingWith orders the result by name
func (r *villeRepositoryImpl) FindByNomStartingWith(ctx context.Context, prefix string) ([]domain.Ville, error) {
	return r.list(ctx, villeSelect+` WHERE casefold(v.nom) LIKE ? ESCAPE '\' ORDER BY v.nom ASC, v.id ASC`, prefixPattern(prefix))
}

// FindByPopulationGreaterThan is strict and orders the most populated first
func (r *villeRepositoryImpl) FindByPopulationGreaterThan(ctx context.Context, min int) ([]domain.Ville, error) {
	return r.list(ctx, villeSelect+` WHERE v.nb_habitants > ? ORDER BY v.nb_habitants DESC, v.id ASC`, min)
}

// FindByPopulationBetween includes both bounds
func (r *villeRepositoryImpl) FindByPopulationBetween(ctx context.Context, min, max int) ([]domain.Ville, error) {
	return r.list(ctx, villeSelect+` WHERE v.nb_habitants BETWEEN ? AND ? ORDER BY v.nb_habitants DESC, v.id ASC`, min, max)
}

func (r *villeRepositoryImpl) FindByDepartementID(ctx context.Context, departementID int64) ([]domain.Ville, error) {
	return r.list(ctx, villeSelect+` WHERE v.id_dept = ? ORDER BY v.nb_habitants DESC, v.id ASC`, departementID)
}

// FindByDepartementIDs loads the villes of several départements in one query
func (r *villeRepositoryImpl) FindByDepartementIDs(ctx context.Context, departementIDs []int64) (map[int64][]domain.Ville, error) {
	byDept := make(map[int64][]domain.Ville, len(departementIDs))
	if len(departementIDs) == 0 {
		return byDept, nil
	}

	args := make([]any, len(departementIDs))
	for i, id := range departementIDs {
		args[i] = id
	}

	rows, err := r.queryDirect(ctx, villeSelect+` WHERE v.id_dept IN (`+placeholders(len(args))+`) ORDER BY v.nb_habitants DESC, v.id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query villes by departements: %w", err)
	}
	villes, err := scanVilles(rows)
	if err != nil {
		return nil, err
	}

	for _, v := range villes {
		byDept[v.Departement.ID] = append(byDept[v.Departement.ID], v)
	}
	return byDept, nil
}

func (r *villeRepositoryImpl) FindByDepartementCode(ctx context.Context, code string) ([]domain.Ville, error) {
	return r.list(ctx, villeSelect+` WHERE d.code = ? ORDER BY v.nb_habitants DESC, v.id ASC`, domain.NormalizeCode(code))
}

// FindByDepartementAndMinPopulation keeps villes strictly above min
func (r *villeRepositoryImpl) FindByDepartementAndMinPopulation(ctx context.Context, code string, min int) ([]domain.Ville, error) {
	return r.list(ctx, villeSelect+` WHERE d.code = ? AND v.nb_habitants > ? ORDER BY v.nb_habitants DESC, v.id ASC`,
		domain.NormalizeCode(code), min)
}

// FindByDepartementAndPopulationRange includes both bounds
func (r *villeRepositoryImpl) FindByDepartementAndPopulationRange(ctx context.Context, code string, min, max int) ([]domain.Ville, error) {
	return r.list(ctx, villeSelect+` WHERE d.code = ? AND v.nb_habitants BETWEEN ? AND ? ORDER BY v.nb_habitants DESC, v.id ASC`,
		domain.NormalizeCode(code), min, max)
}

func (r *villeRepositoryImpl) FindTopNByDepartement(ctx context.Context, code string, n int) ([]domain.Ville, error) {
	if n <= 0 {
		return []domain.Ville{}, nil
	}
	return r.list(ctx, villeSelect+` WHERE d.code = ? ORDER BY v.nb_habitants DESC, v.id ASC LIMIT ?`,
		domain.NormalizeCode(code), n)
}

func (r *villeRepositoryImpl) FindMostPopulated(ctx context.Context, code string) (domain.Ville, error) {
	top, err := r.FindTopNByDepartement(ctx, code, 1)
	if err != nil {
		return domain.Ville{}, err
	}
	if len(top) == 0 {
		return domain.Ville{}, fmt.Errorf("most populated ville of departement %s: %w", code, ErrNotFound)
	}
	return top[0], nil
}

func (r *villeRepositoryImpl) CountByDepartement(ctx context.Context, code string) (int64, error) {
	n, err := r.count(ctx, `
		SELECT COUNT(*) FROM ville v JOIN departement d ON d.id = v.id_dept
		WHERE d.code = ?`, domain.NormalizeCode(code))
	if err != nil {
		return 0, fmt.Errorf("failed to count villes of departement %s: %w", code, err)
	}
	return n, nil
}

func (r *villeRepositoryImpl) SumPopulationByDepartement(ctx context.Context, code string) (int64, error) {
	n, err := r.count(ctx, `
		SELECT COALESCE(SUM(v.nb_habitants), 0) FROM ville v JOIN departement d ON d.id = v.id_dept
		WHERE d.code = ?`, domain.NormalizeCode(code))
	if err != nil {
		return 0, fmt.Errorf("failed to sum population of departement %s: %w", code, err)
	}
	return n, nil
}

func (r *villeRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.exec(ctx, `DELETE FROM ville WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ville: %w", err)
	}
	return affectedOrNotFound(res, fmt.Sprintf("ville with ID %d", id))
}

func (r *villeRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM ville WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check ville existence: %w", err)
	}
	return n > 0, nil
}

func (r *villeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM ville`)
	if err != nil {
		return 0, fmt.Errorf("failed to count villes: %w", err)
	}
	return n, nil
}

func (r *villeRepositoryImpl) findOne(ctx context.Context, q string, args ...any) (domain.Ville, error) {
	var (
		v       domain.Ville
		deptNom sql.NullString
	)
	err := r.queryRow(ctx, q, args...).Scan(&v.ID, &v.Nom, &v.NbHabitants, &v.Departement.ID, &v.Departement.Code, &deptNom)
	if err != nil {
		return domain.Ville{}, err
	}
	v.Departement.Nom = stringPtr(deptNom)
	return v, nil
}

func (r *villeRepositoryImpl) list(ctx context.Context, q string, args ...any) ([]domain.Ville, error) {
	rows, err := r.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query villes: %w", err)
	}
	return scanVilles(rows)
}

func scanVilles(rows *sql.Rows) (villes []domain.Ville, err error) {
	defer closeRows(rows, &err)

	villes = []domain.Ville{}
	for rows.Next() {
		var (
			v       domain.Ville
			deptNom sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.Nom, &v.NbHabitants, &v.Departement.ID, &v.Departement.Code, &deptNom); err != nil {
			return nil, fmt.Errorf("failed to scan ville: %w", err)
		}
		v.Departement.Nom = stringPtr(deptNom)
		villes = append(villes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating villes: %w", err)
	}
	return villes, nil
}
