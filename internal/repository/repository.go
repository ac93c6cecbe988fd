package repository

import (
	"database/sql"
	"fmt"

	"github.com/complykit/compliance-service/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO compliance.users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM compliance.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateBusiness creates a new business profile in the database
func (r *Repository) CreateBusiness(b *models.BusinessProfile) error {
	query := `
		INSERT INTO compliance.businesses
			(name, business_type, sector, registration_date, tax_id, social_insurance_id,
			 vat_registered, employee_count, annual_revenue, region, municipality, contact_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.db.QueryRow(query,
		b.Name, b.BusinessType, b.Sector, b.RegistrationDate, b.TaxID, b.SocialInsuranceID,
		b.VATRegistered, b.EmployeeCount, b.AnnualRevenue, b.Region, b.Municipality, b.ContactEmail).
		Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

// FindBusinessByID retrieves a business profile by id
func (r *Repository) FindBusinessByID(id int64) (*models.BusinessProfile, error) {
	b := &models.BusinessProfile{}
	query := `
		SELECT id, name, business_type, sector, registration_date, tax_id, social_insurance_id,
		       vat_registered, employee_count, annual_revenue, region, municipality, contact_email
		FROM compliance.businesses
		WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&b.ID, &b.Name, &b.BusinessType, &b.Sector, &b.RegistrationDate, &b.TaxID, &b.SocialInsuranceID,
		&b.VATRegistered, &b.EmployeeCount, &b.AnnualRevenue, &b.Region, &b.Municipality, &b.ContactEmail)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("business not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find business: %w", err)
	}
	return b, nil
}

// ListBusinesses returns all business profiles for the periodic batch run
func (r *Repository) ListBusinesses() ([]models.BusinessProfile, error) {
	query := `
		SELECT id, name, business_type, sector, registration_date, tax_id, social_insurance_id,
		       vat_registered, employee_count, annual_revenue, region, municipality, contact_email
		FROM compliance.businesses
		ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	var businesses []models.BusinessProfile
	for rows.Next() {
		var b models.BusinessProfile
		if err := rows.Scan(
			&b.ID, &b.Name, &b.BusinessType, &b.Sector, &b.RegistrationDate, &b.TaxID, &b.SocialInsuranceID,
			&b.VATRegistered, &b.EmployeeCount, &b.AnnualRevenue, &b.Region, &b.Municipality, &b.ContactEmail); err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read businesses: %w", err)
	}
	return businesses, nil
}

// RecordFiling stores a filing made with an agency
func (r *Repository) RecordFiling(f *models.FilingRecord) error {
	query := `
		INSERT INTO compliance.filings (business_id, agency, filing_type, filed_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.db.QueryRow(query, f.BusinessID, f.Agency, f.FilingType, f.FiledDate).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("failed to record filing: %w", err)
	}
	return nil
}

// ListFilings returns a business's filing history, most recent first
func (r *Repository) ListFilings(businessID int64) ([]models.FilingRecord, error) {
	query := `
		SELECT id, business_id, agency, filing_type, filed_date
		FROM compliance.filings
		WHERE business_id = $1
		ORDER BY filed_date DESC`
	rows, err := r.db.Query(query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list filings: %w", err)
	}
	defer rows.Close()

	var filings []models.FilingRecord
	for rows.Next() {
		var f models.FilingRecord
		if err := rows.Scan(&f.ID, &f.BusinessID, &f.Agency, &f.FilingType, &f.FiledDate); err != nil {
			return nil, fmt.Errorf("failed to scan filing: %w", err)
		}
		filings = append(filings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read filings: %w", err)
	}
	return filings, nil
}

// SaveComplianceScore writes a computed score back onto the business record
func (r *Repository) SaveComplianceScore(businessID int64, score *models.ComplianceScore) error {
	query := `
		UPDATE compliance.businesses
		SET compliance_score = $2, compliance_level = $3, critical_issues = $4, assessed_at = $5
		WHERE id = $1`
	result, err := r.db.Exec(query, businessID, score.Overall, score.Level, score.CriticalIssues, score.ComputedAt)
	if err != nil {
		return fmt.Errorf("failed to save compliance score: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save compliance score: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("business not found")
	}
	return nil
}
