package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
)

const propertyColumns = `p.id, p.owner_id, p.property_type, p.street_address, p.city, p.state,
	p.postal_code, p.country, p.bedrooms, p.bathrooms, p.area_sqm, p.year_built,
	p.latitude, p.longitude, p.created_at, p.updated_at`

func propertyDest(p *entity.Property) []any {
	return []any{&p.ID, &p.OwnerID, &p.Type, &p.StreetAddress, &p.City, &p.State,
		&p.PostalCode, &p.Country, &p.Bedrooms, &p.Bathrooms, &p.AreaSqm, &p.YearBuilt,
		&p.Latitude, &p.Longitude, &p.CreatedAt, &p.UpdatedAt}
}

func scanProperty(row scanner) (*entity.Property, error) {
	p := &entity.Property{}
	if err := row.Scan(propertyDest(p)...); err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

type PropertyRepository struct {
	db DB
}

func NewPropertyRepository(db DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Save(ctx context.Context, p *entity.Property) (*entity.Property, error) {
	if p.ID == "" {
		id := uuid.NewString()
		row := r.db.QueryRow(ctx, `
			INSERT INTO properties (id, owner_id, property_type, street_address, city, state, postal_code,
				country, bedrooms, bathrooms, area_sqm, year_built, latitude, longitude)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING created_at, updated_at
		`, id, p.OwnerID, string(p.Type), p.StreetAddress, p.City, p.State, p.PostalCode,
			p.Country, p.Bedrooms, p.Bathrooms, p.AreaSqm, p.YearBuilt, p.Latitude, p.Longitude)
		if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		p.ID = id
		return p, nil
	}
	row := r.db.QueryRow(ctx, `
		UPDATE properties
		SET owner_id = $2, property_type = $3, street_address = $4, city = $5, state = $6,
		    postal_code = $7, country = $8, bedrooms = $9, bathrooms = $10, area_sqm = $11,
		    year_built = $12, latitude = $13, longitude = $14, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, p.ID, p.OwnerID, string(p.Type), p.StreetAddress, p.City, p.State, p.PostalCode,
		p.Country, p.Bedrooms, p.Bathrooms, p.AreaSqm, p.YearBuilt, p.Latitude, p.Longitude)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*entity.Property, error) {
	return scanProperty(r.db.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties p WHERE p.id = $1`, id))
}

func (r *PropertyRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]*entity.Property, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+propertyColumns+` FROM properties p
		WHERE p.owner_id = $1
		ORDER BY p.created_at DESC
	`, ownerID)
	return collect(rows, err, scanProperty)
}

func (r *PropertyRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM properties WHERE id = $1)`, id)
}

func (r *PropertyRepository) DeleteByID(ctx context.Context, id string) error {
	return execDelete(ctx, r.db, `DELETE FROM properties WHERE id = $1`, id)
}

type PropertyAttributeRepository struct {
	db DB
}

func NewPropertyAttributeRepository(db DB) *PropertyAttributeRepository {
	return &PropertyAttributeRepository{db: db}
}

const attributeColumns = `a.id, a.name, a.data_type, a.unit, a.created_at`

func attributeDest(a *entity.PropertyAttribute) []any {
	return []any{&a.ID, &a.Name, &a.DataType, &a.Unit, &a.CreatedAt}
}

func scanAttribute(row scanner) (*entity.PropertyAttribute, error) {
	a := &entity.PropertyAttribute{}
	if err := row.Scan(attributeDest(a)...); err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (r *PropertyAttributeRepository) Save(ctx context.Context, a *entity.PropertyAttribute) (*entity.PropertyAttribute, error) {
	if a.ID == "" {
		id := uuid.NewString()
		if err := r.db.QueryRow(ctx, `
			INSERT INTO property_attributes (id, name, data_type, unit)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at
		`, id, a.Name, string(a.DataType), a.Unit).Scan(&a.CreatedAt); err != nil {
			return nil, mapErr(err)
		}
		a.ID = id
		return a, nil
	}
	err := updated(r.db.Exec(ctx, `
		UPDATE property_attributes SET name = $2, data_type = $3, unit = $4 WHERE id = $1
	`, a.ID, a.Name, string(a.DataType), a.Unit))
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PropertyAttributeRepository) FindByID(ctx context.Context, id string) (*entity.PropertyAttribute, error) {
	return scanAttribute(r.db.QueryRow(ctx, `SELECT `+attributeColumns+` FROM property_attributes a WHERE a.id = $1`, id))
}

func (r *PropertyAttributeRepository) FindByName(ctx context.Context, name string) (*entity.PropertyAttribute, error) {
	return scanAttribute(r.db.QueryRow(ctx, `SELECT `+attributeColumns+` FROM property_attributes a WHERE lower(a.name) = lower($1)`, name))
}

func (r *PropertyAttributeRepository) FindAll(ctx context.Context) ([]*entity.PropertyAttribute, error) {
	rows, err := r.db.Query(ctx, `SELECT `+attributeColumns+` FROM property_attributes a ORDER BY a.name`)
	return collect(rows, err, scanAttribute)
}

func (r *PropertyAttributeRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM property_attributes WHERE id = $1)`, id)
}

func (r *PropertyAttributeRepository) DeleteByID(ctx context.Context, id string) error {
	return execDelete(ctx, r.db, `DELETE FROM property_attributes WHERE id = $1`, id)
}

// PropertyAttributeValueRepository reads only rows with deleted = false.
type PropertyAttributeValueRepository struct {
	db DB
}

func NewPropertyAttributeValueRepository(db DB) *PropertyAttributeValueRepository {
	return &PropertyAttributeValueRepository{db: db}
}

const attributeValueSelect = `
	SELECT v.id, v.property_id, v.attribute_id, v.value, v.deleted, v.deleted_at, v.created_at, v.updated_at,
	       ` + attributeColumns + `
	FROM property_attribute_values v
	JOIN property_attributes a ON a.id = v.attribute_id
	WHERE v.deleted = false`

func scanAttributeValue(row scanner) (*entity.PropertyAttributeValue, error) {
	v := &entity.PropertyAttributeValue{Attribute: &entity.PropertyAttribute{}}
	dest := append([]any{&v.ID, &v.PropertyID, &v.AttributeID, &v.Value, &v.Deleted, &v.DeletedAt,
		&v.CreatedAt, &v.UpdatedAt}, attributeDest(v.Attribute)...)
	if err := row.Scan(dest...); err != nil {
		return nil, mapErr(err)
	}
	return v, nil
}

func (r *PropertyAttributeValueRepository) Save(ctx context.Context, v *entity.PropertyAttributeValue) (*entity.PropertyAttributeValue, error) {
	if v.ID == "" {
		id := uuid.NewString()
		if err := r.db.QueryRow(ctx, `
			INSERT INTO property_attribute_values (id, property_id, attribute_id, value, deleted, deleted_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at, updated_at
		`, id, v.PropertyID, v.AttributeID, v.Value, v.Deleted, v.DeletedAt).Scan(&v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		v.ID = id
		return v, nil
	}
	if err := r.db.QueryRow(ctx, `
		UPDATE property_attribute_values
		SET value = $2, deleted = $3, deleted_at = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, v.ID, v.Value, v.Deleted, v.DeletedAt).Scan(&v.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return v, nil
}

func (r *PropertyAttributeValueRepository) FindByID(ctx context.Context, id string) (*entity.PropertyAttributeValue, error) {
	return scanAttributeValue(r.db.QueryRow(ctx, attributeValueSelect+` AND v.id = $1`, id))
}

func (r *PropertyAttributeValueRepository) FindByPropertyID(ctx context.Context, propertyID string) ([]*entity.PropertyAttributeValue, error) {
	rows, err := r.db.Query(ctx, attributeValueSelect+` AND v.property_id = $1 ORDER BY a.name`, propertyID)
	return collect(rows, err, scanAttributeValue)
}

func (r *PropertyAttributeValueRepository) FindByPropertyAndAttribute(ctx context.Context, propertyID, attributeID string) (*entity.PropertyAttributeValue, error) {
	return scanAttributeValue(r.db.QueryRow(ctx, attributeValueSelect+` AND v.property_id = $1 AND v.attribute_id = $2`, propertyID, attributeID))
}

func (r *PropertyAttributeValueRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM property_attribute_values WHERE id = $1 AND deleted = false)`, id)
}

// DeleteByID marks the value deleted; the row stays for audit.
func (r *PropertyAttributeValueRepository) DeleteByID(ctx context.Context, id string) error {
	err := updated(r.db.Exec(ctx, `
		UPDATE property_attribute_values
		SET deleted = true, deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted = false
	`, id))
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

type PropertyMediaRepository struct {
	db DB
}

func NewPropertyMediaRepository(db DB) *PropertyMediaRepository {
	return &PropertyMediaRepository{db: db}
}

const mediaColumns = `id, property_id, url, object_path, content_type, display_order, created_at`

func scanMedia(row scanner) (*entity.PropertyMedia, error) {
	m := &entity.PropertyMedia{}
	if err := row.Scan(&m.ID, &m.PropertyID, &m.URL, &m.ObjectPath, &m.ContentType, &m.DisplayOrder, &m.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return m, nil
}

func (r *PropertyMediaRepository) Save(ctx context.Context, m *entity.PropertyMedia) (*entity.PropertyMedia, error) {
	if m.ID == "" {
		id := uuid.NewString()
		if err := r.db.QueryRow(ctx, `
			INSERT INTO property_media (id, property_id, url, object_path, content_type, display_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at
		`, id, m.PropertyID, m.URL, m.ObjectPath, m.ContentType, m.DisplayOrder).Scan(&m.CreatedAt); err != nil {
			return nil, mapErr(err)
		}
		m.ID = id
		return m, nil
	}
	err := updated(r.db.Exec(ctx, `
		UPDATE property_media SET url = $2, object_path = $3, content_type = $4, display_order = $5 WHERE id = $1
	`, m.ID, m.URL, m.ObjectPath, m.ContentType, m.DisplayOrder))
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PropertyMediaRepository) FindByID(ctx context.Context, id string) (*entity.PropertyMedia, error) {
	return scanMedia(r.db.QueryRow(ctx, `SELECT `+mediaColumns+` FROM property_media WHERE id = $1`, id))
}

func (r *PropertyMediaRepository) FindByPropertyID(ctx context.Context, propertyID string) ([]*entity.PropertyMedia, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+mediaColumns+` FROM property_media
		WHERE property_id = $1
		ORDER BY display_order, created_at
	`, propertyID)
	return collect(rows, err, scanMedia)
}

func (r *PropertyMediaRepository) CountByPropertyID(ctx context.Context, propertyID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM property_media WHERE property_id = $1`, propertyID).Scan(&n); err != nil {
		if errors.Is(mapErr(err), repository.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

func (r *PropertyMediaRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM property_media WHERE id = $1)`, id)
}

func (r *PropertyMediaRepository) DeleteByID(ctx context.Context, id string) error {
	return execDelete(ctx, r.db, `DELETE FROM property_media WHERE id = $1`, id)
}

var (
	_ repository.PropertyRepository               = (*PropertyRepository)(nil)
	_ repository.PropertyAttributeRepository      = (*PropertyAttributeRepository)(nil)
	_ repository.PropertyAttributeValueRepository = (*PropertyAttributeValueRepository)(nil)
	_ repository.PropertyMediaRepository          = (*PropertyMediaRepository)(nil)
)
