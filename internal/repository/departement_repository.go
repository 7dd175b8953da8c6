package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jbweber/homelab/territoire/internal/datastore"
	"github.com/jbweber/homelab/territoire/internal/domain"
)

// DepartementRepository defines domain-specific operations for départements
type DepartementRepository interface {
	PagingRepository[domain.Departement, int64]

	// FindByCode matches the uppercase code and loads the owned villes,
	// most populated first
	FindByCode(ctx context.Context, code string) (domain.Departement, error)
	FindByNom(ctx context.Context, nom string) (domain.Departement, error)
	Search(ctx context.Context, term string) ([]domain.Departement, error)
	FindWithNom(ctx context.Context) ([]domain.Departement, error)
	FindWithoutNom(ctx context.Context) ([]domain.Departement, error)
	FindWithVilles(ctx context.Context) ([]domain.Departement, error)
	FindWithMinVilles(ctx context.Context, min int64) ([]domain.Departement, error)
	FindWithMinPopulation(ctx context.Context, min int64) ([]domain.Departement, error)
	FindMetropolitains(ctx context.Context) ([]domain.Departement, error)
	FindOutreMer(ctx context.Context) ([]domain.Departement, error)
	FindCorse(ctx context.Context) ([]domain.Departement, error)
	FindByCodePrefix(ctx context.Context, prefix string) ([]domain.Departement, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	CountVilles(ctx context.Context, departementID int64) (int64, error)
	SumPopulation(ctx context.Context, departementID int64) (int64, error)
}

const departementColumns = `d.id, d.code, d.nom`

// departementSorts maps paging sort keys to ORDER BY clauses. Aggregates come
// from the villeStats join in FindAllPaged.
var departementSorts = map[string]string{
	"nom":          "CASE WHEN d.nom IS NULL THEN 1 ELSE 0 END, d.nom ASC, d.id ASC",
	"code":         "d.code ASC, d.id ASC",
	"population":   "COALESCE(s.population, 0) DESC, d.id ASC",
	"nombreVilles": "COALESCE(s.nb, 0) DESC, d.id ASC",
}

// DepartementSortKeys lists the accepted paging sort keys.
func DepartementSortKeys() []string {
	return []string{"nom", "code", "population", "nombreVilles"}
}

// departementRepositoryImpl implements DepartementRepository
type departementRepositoryImpl struct {
	sqlRepository
	villes *villeRepositoryImpl
}

// NewDepartementRepository creates a new département repository
func NewDepartementRepository(ds *datastore.Datastore, cache *PreparedStatementCache) DepartementRepository {
	base := newSQLRepository(ds, cache)
	return &departementRepositoryImpl{
		sqlRepository: base,
		villes:        &villeRepositoryImpl{sqlRepository: base},
	}
}

// Save creates or updates a département
func (r *departementRepositoryImpl) Save(ctx context.Context, d domain.Departement) (domain.Departement, error) {
	d.Code = domain.NormalizeCode(d.Code)
	if d.Code == "" {
		return domain.Departement{}, fmt.Errorf("departement code is required: %w", ErrInvalidEntity)
	}

	if d.ID == 0 {
		return r.create(ctx, d)
	}
	return r.update(ctx, d)
}

func (r *departementRepositoryImpl) create(ctx context.Context, d domain.Departement) (domain.Departement, error) {
	id, err := r.insert(ctx, `INSERT INTO departement (code, nom) VALUES (?, ?)`, d.Code, nullableString(d.Nom))
	if err != nil {
		return domain.Departement{}, translateWriteError(fmt.Sprintf("departement with code %s", d.Code), err)
	}
	d.ID = id
	return d, nil
}

func (r *departementRepositoryImpl) update(ctx context.Context, d domain.Departement) (domain.Departement, error) {
	res, err := r.exec(ctx, `
		UPDATE departement
		SET code = ?, nom = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		d.Code, nullableString(d.Nom), d.ID)
	if err != nil {
		return domain.Departement{}, translateWriteError(fmt.Sprintf("departement with code %s", d.Code), err)
	}
	if err := affectedOrNotFound(res, fmt.Sprintf("departement with ID %d", d.ID)); err != nil {
		return domain.Departement{}, err
	}
	return d, nil
}

// FindByID retrieves a département by its ID, without villes
func (r *departementRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.Departement, error) {
	d, err := r.findOne(ctx, `SELECT `+departementColumns+` FROM departement d WHERE d.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Departement{}, fmt.Errorf("departement with ID %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Departement{}, fmt.Errorf("failed to find departement: %w", err)
	}
	return d, nil
}

// FindByCode retrieves a département by code along with its villes
func (r *departementRepositoryImpl) FindByCode(ctx context.Context, code string) (domain.Departement, error) {
	code = domain.NormalizeCode(code)
	d, err := r.findOne(ctx, `SELECT `+departementColumns+` FROM departement d WHERE d.code = ?`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Departement{}, fmt.Errorf("departement with code %s: %w", code, ErrNotFound)
	}
	if err != nil {
		return domain.Departement{}, fmt.Errorf("failed to find departement by code: %w", err)
	}

	villes, err := r.villes.FindByDepartementID(ctx, d.ID)
	if err != nil {
		return domain.Departement{}, err
	}
	d.Villes = villes
	return d, nil
}

// FindByNom retrieves a département by its exact name
func (r *departementRepositoryImpl) FindByNom(ctx context.Context, nom string) (domain.Departement, error) {
	d, err := r.findOne(ctx, `SELECT `+departementColumns+` FROM departement d WHERE d.nom = ? ORDER BY d.id LIMIT 1`, nom)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Departement{}, fmt.Errorf("departement with nom %s: %w", nom, ErrNotFound)
	}
	if err != nil {
		return domain.Departement{}, fmt.Errorf("failed to find departement by nom: %w", err)
	}
	return d, nil
}

// FindAll retrieves all départements in ID order
func (r *departementRepositoryImpl) FindAll(ctx context.Context) ([]domain.Departement, error) {
	return r.list(ctx, `SELECT `+departementColumns+` FROM departement d ORDER BY d.id`)
}

// FindAllPaged retrieves one page of départements
func (r *departementRepositoryImpl) FindAllPaged(ctx context.Context, req PageRequest) (Page[domain.Departement], error) {
	order, ok := departementSorts[req.Sort]
	if !ok {
		return Page[domain.Departement]{}, fmt.Errorf("departement sort %q: %w", req.Sort, ErrInvalidSort)
	}

	total, err := r.Count(ctx)
	if err != nil {
		return Page[domain.Departement]{}, err
	}

	content, err := r.list(ctx, `
		SELECT `+departementColumns+`
		FROM departement d
		LEFT JOIN (
			SELECT id_dept, COUNT(*) AS nb, SUM(nb_habitants) AS population
			FROM ville GROUP BY id_dept
		) s ON s.id_dept = d.id
		ORDER BY `+order+`
		LIMIT ? OFFSET ?`, req.Size, req.Offset())
	if err != nil {
		return Page[domain.Departement]{}, err
	}

	return NewPage(content, req, total), nil
}

// Search matches term as a case-insensitive substring of the name or the code
func (r *departementRepositoryImpl) Search(ctx context.Context, term string) ([]domain.Departement, error) {
	pattern := containsPattern(term)
	return r.list(ctx, `
		SELECT `+departementColumns+` FROM departement d
		WHERE casefold(d.nom) LIKE ? ESCAPE '\' OR casefold(d.code) LIKE ? ESCAPE '\'
		ORDER BY d.code`, pattern, pattern)
}

func (r *departementRepositoryImpl) FindWithNom(ctx context.Context) ([]domain.Departement, error) {
	return r.list(ctx, `SELECT `+departementColumns+` FROM departement d WHERE d.nom IS NOT NULL ORDER BY d.id`)
}

func (r *departementRepositoryImpl) FindWithoutNom(ctx context.Context) ([]domain.Departement, error) {
	return r.list(ctx, `SELECT `+departementColumns+` FROM departement d WHERE d.nom IS NULL ORDER BY d.id`)
}

func (r *departementRepositoryImpl) FindWithVilles(ctx context.Context) ([]domain.Departement, error) {
	return r.list(ctx, `
		SELECT `+departementColumns+` FROM departement d
		WHERE EXISTS (SELECT 1 FROM ville v WHERE v.id_dept = d.id)
		ORDER BY d.id`)
}

// FindWithMinVilles returns départements owning at least min villes
func (r *departementRepositoryImpl) FindWithMinVilles(ctx context.Context, min int64) ([]domain.Departement, error) {
	return r.list(ctx, `
		SELECT `+departementColumns+` FROM departement d
		WHERE (SELECT COUNT(*) FROM ville v WHERE v.id_dept = d.id) >= ?
		ORDER BY d.id`, min)
}

// FindWithMinPopulation returns départements whose villes add up to at least min inhabitants
func (r *departementRepositoryImpl) FindWithMinPopulation(ctx context.Context, min int64) ([]domain.Departement, error) {
	return r.list(ctx, `
		SELECT `+departementColumns+` FROM departement d
		WHERE (SELECT COALESCE(SUM(v.nb_habitants), 0) FROM ville v WHERE v.id_dept = d.id) >= ?
		ORDER BY d.id`, min)
}

// FindMetropolitains excludes overseas codes and every code starting with "2"
func (r *departementRepositoryImpl) FindMetropolitains(ctx context.Context) ([]domain.Departement, error) {
	return r.list(ctx, `
		SELECT `+departementColumns+` FROM departement d
		WHERE d.code NOT LIKE '97%' AND d.code NOT LIKE '2%'
		ORDER BY d.code`)
}

func (r *departementRepositoryImpl) FindOutreMer(ctx context.Context) ([]domain.Departement, error) {
	return r.list(ctx, `SELECT `+departementColumns+` FROM departement d WHERE d.code LIKE '97%' ORDER BY d.code`)
}

func (r *departementRepositoryImpl) FindCorse(ctx context.Context) ([]domain.Departement, error) {
	return r.list(ctx, `SELECT `+departementColumns+` FROM departement d WHERE d.code IN ('2A', '2B') ORDER BY d.code`)
}

func (r *departementRepositoryImpl) FindByCodePrefix(ctx context.Context, prefix string) ([]domain.Departement, error) {
	return r.list(ctx, `
		SELECT `+departementColumns+` FROM departement d
		WHERE d.code LIKE ? ESCAPE '\'
		ORDER BY d.code`, likeEscaper.Replace(domain.NormalizeCode(prefix))+"%")
}

// DeleteByID removes a département. Returns ErrInUse while villes reference it
func (r *departementRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.exec(ctx, `DELETE FROM departement WHERE id = ?`, id)
	if err != nil {
		if datastore.IsForeignKeyViolation(err) {
			return fmt.Errorf("departement with ID %d: %w", id, ErrInUse)
		}
		return fmt.Errorf("failed to delete departement: %w", err)
	}
	return affectedOrNotFound(res, fmt.Sprintf("departement with ID %d", id))
}

func (r *departementRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM departement WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check departement existence: %w", err)
	}
	return n > 0, nil
}

func (r *departementRepositoryImpl) ExistsByCode(ctx context.Context, code string) (bool, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM departement WHERE code = ?`, domain.NormalizeCode(code))
	if err != nil {
		return false, fmt.Errorf("failed to check departement existence: %w", err)
	}
	return n > 0, nil
}

func (r *departementRepositoryImpl) Count(ctx context.Context) (int64, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM departement`)
	if err != nil {
		return 0, fmt.Errorf("failed to count departements: %w", err)
	}
	return n, nil
}

func (r *departementRepositoryImpl) CountVilles(ctx context.Context, departementID int64) (int64, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM ville WHERE id_dept = ?`, departementID)
	if err != nil {
		return 0, fmt.Errorf("failed to count villes of departement %d: %w", departementID, err)
	}
	return n, nil
}

// SumPopulation returns 0 for a département without villes
func (r *departementRepositoryImpl) SumPopulation(ctx context.Context, departementID int64) (int64, error) {
	n, err := r.count(ctx, `SELECT COALESCE(SUM(nb_habitants), 0) FROM ville WHERE id_dept = ?`, departementID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum population of departement %d: %w", departementID, err)
	}
	return n, nil
}

func (r *departementRepositoryImpl) findOne(ctx context.Context, q string, args ...any) (domain.Departement, error) {
	var (
		d   domain.Departement
		nom sql.NullString
	)
	if err := r.queryRow(ctx, q, args...).Scan(&d.ID, &d.Code, &nom); err != nil {
		return domain.Departement{}, err
	}
	d.Nom = stringPtr(nom)
	return d, nil
}

func (r *departementRepositoryImpl) list(ctx context.Context, q string, args ...any) (departements []domain.Departement, err error) {
	rows, err := r.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query departements: %w", err)
	}
	defer closeRows(rows, &err)

	departements = []domain.Departement{}
	for rows.Next() {
		var (
			d   domain.Departement
			nom sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.Code, &nom); err != nil {
			return nil, fmt.Errorf("failed to scan departement: %w", err)
		}
		d.Nom = stringPtr(nom)
		departements = append(departements, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating departements: %w", err)
	}
	return departements, nil
}
