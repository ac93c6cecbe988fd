package models

import "time"

// BusinessType classifies the legal form of a client business.
type BusinessType string

const (
	BusinessTypeCorporation        BusinessType = "corporation"
	BusinessTypePartnership        BusinessType = "partnership"
	BusinessTypeSoleProprietorship BusinessType = "sole_proprietorship"
	BusinessTypeBranch             BusinessType = "branch"
	BusinessTypeSubsidiary         BusinessType = "subsidiary"
)

// Agency identifies an independent regulatory body with its own filing obligations.
type Agency string

const (
	AgencyTaxAuthority     Agency = "tax_authority"
	AgencySocialInsurance  Agency = "social_insurance"
	AgencyCompanyRegistry  Agency = "company_registry"
	AgencyInvestmentOffice Agency = "investment_office"
	AgencyEnvironmental    Agency = "environmental_regulator"
	AgencyImmigration      Agency = "immigration_authority"
)

// BusinessProfile is the immutable input describing a client business.
// The engine never mutates it; ownership stays with the caller.
type BusinessProfile struct {
	ID                int64        `json:"id"`
	Name              string       `json:"name"`
	BusinessType      BusinessType `json:"business_type"`
	Sector            string       `json:"sector"`
	RegistrationDate  *time.Time   `json:"registration_date,omitempty"`
	TaxID             string       `json:"tax_id"`
	SocialInsuranceID string       `json:"social_insurance_id"`
	VATRegistered     bool         `json:"vat_registered"`
	EmployeeCount     int          `json:"employee_count"`
	AnnualRevenue     float64      `json:"annual_revenue"`
	Region            string       `json:"region"`
	Municipality      string       `json:"municipality"`
	ContactEmail      string       `json:"contact_email"`
}
