package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// LicenseType represents the subscription tier of a company
type LicenseType string

const (
	LicenseBasic        LicenseType = "BASIC"
	LicenseProfessional LicenseType = "PROFESSIONAL"
	LicenseEnterprise   LicenseType = "ENTERPRISE"
)

// Company represents a real-estate agency (tenant)
type Company struct {
	BaseModel
	Name        string      `gorm:"type:varchar(200);not null" json:"name"`
	Slug        string      `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	LicenseType LicenseType `gorm:"type:varchar(50);not null;default:'BASIC';column:license_type" json:"licenseType"`
	IsActive    bool        `gorm:"not null;default:true;column:is_active" json:"isActive"`
	Areas       []Area      `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
	Users       []User      `gorm:"foreignKey:CompanyID" json:"-"`
}

// Area represents a sales territory inside a company
type Area struct {
	BaseModel
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:company_id" json:"companyId"`
	Company   *Company  `gorm:"foreignKey:CompanyID" json:"-"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"isActive"`
}

// UserStatus represents the account state of a user
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusInactive  UserStatus = "INACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User represents a CRM user at any level of the sales hierarchy.
// CompanyID is nullable: super admins are not bound to a company.
// ManagedAreaIDs is only populated for superintendents and managers that
// administer more than their home area.
type User struct {
	BaseModel
	Name           string         `gorm:"type:varchar(200);not null" json:"name"`
	Email          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string         `gorm:"type:varchar(255);not null;column:password_hash" json:"-"`
	AccessLevel    AccessLevel    `gorm:"type:varchar(50);not null;index;column:access_level" json:"accessLevel"`
	Status         UserStatus     `gorm:"type:varchar(50);not null;default:'ACTIVE'" json:"status"`
	CompanyID      *uuid.UUID     `gorm:"type:uuid;index;column:company_id" json:"companyId,omitempty"`
	Company        *Company       `gorm:"foreignKey:CompanyID" json:"-"`
	AreaID         *uuid.UUID     `gorm:"type:uuid;index;column:area_id" json:"areaId,omitempty"`
	Area           *Area          `gorm:"foreignKey:AreaID" json:"-"`
	ManagedAreaIDs pq.StringArray `gorm:"type:text[];column:managed_area_ids" json:"managedAreaIds"`
}

// ManagedAreaUUIDs parses the stored managed area ids, skipping invalid entries.
func (u *User) ManagedAreaUUIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(u.ManagedAreaIDs))
	for _, raw := range u.ManagedAreaIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// LeadStatus represents the funnel stage of a lead. The funnel is linear
// (LEAD through SOLD) with LOST as the terminal failure state. QUALIFIED is a
// legacy stage kept for leads imported from the previous CRM.
type LeadStatus string

const (
	LeadStatusLead      LeadStatus = "LEAD"
	LeadStatusQualified LeadStatus = "QUALIFIED"
	LeadStatusVisit     LeadStatus = "VISIT"
	LeadStatusCallback  LeadStatus = "CALLBACK"
	LeadStatusProposal  LeadStatus = "PROPOSAL"
	LeadStatusSold      LeadStatus = "SOLD"
	LeadStatusLost      LeadStatus = "LOST"
)

// IsValid checks if the LeadStatus is a valid enum value
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusLead, LeadStatusQualified, LeadStatusVisit, LeadStatusCallback,
		LeadStatusProposal, LeadStatusSold, LeadStatusLost:
		return true
	}
	return false
}

// LeadSource represents the acquisition channel of a lead
type LeadSource string

const (
	LeadSourceEmail      LeadSource = "EMAIL"
	LeadSourceWhatsApp   LeadSource = "WHATSAPP"
	LeadSourceBalcao     LeadSource = "BALCAO"
	LeadSourceCRM        LeadSource = "CRM"
	LeadSourceHubSpot    LeadSource = "HUBSPOT"
	LeadSourceZapImoveis LeadSource = "ZAP_IMOVEIS"
	LeadSourceOLX        LeadSource = "OLX"
	LeadSourceVivaReal   LeadSource = "VIVA_REAL"
	LeadSourceWebsite    LeadSource = "WEBSITE"
	LeadSourceIndication LeadSource = "INDICATION"
	LeadSourceOther      LeadSource = "OTHER"
)

// Lead represents a sales prospect. Every lead has exactly one owning seller
// and is attributed to exactly one area and company at creation time.
type Lead struct {
	BaseModel
	Name            string     `gorm:"type:varchar(200);not null" json:"name"`
	Phone           string     `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Email           string     `gorm:"type:varchar(255)" json:"email,omitempty"`
	Status          LeadStatus `gorm:"type:varchar(50);not null;default:'LEAD';index" json:"status"`
	Source          LeadSource `gorm:"type:varchar(50);not null;default:'OTHER'" json:"source"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`
	SellerID        uuid.UUID  `gorm:"type:uuid;not null;index;column:seller_id" json:"sellerId"`
	Seller          *User      `gorm:"foreignKey:SellerID" json:"-"`
	AreaID          uuid.UUID  `gorm:"type:uuid;not null;index;column:area_id" json:"areaId"`
	CompanyID       uuid.UUID  `gorm:"type:uuid;not null;index;column:company_id" json:"companyId"`
	HubspotID       *string    `gorm:"type:varchar(100);uniqueIndex;column:hubspot_id" json:"hubspotId,omitempty"`
	HubspotSyncedAt *time.Time `gorm:"column:hubspot_synced_at" json:"hubspotSyncedAt,omitempty"`
}

// ConversationStatus represents the state of a WhatsApp conversation
type ConversationStatus string

const (
	ConversationActive          ConversationStatus = "ACTIVE"
	ConversationWaitingResponse ConversationStatus = "WAITING_RESPONSE"
	ConversationClosed          ConversationStatus = "CLOSED"
	ConversationArchived        ConversationStatus = "ARCHIVED"
)

// Conversation represents a message thread between a seller and a lead
type Conversation struct {
	BaseModel
	LeadID            uuid.UUID          `gorm:"type:uuid;not null;index;column:lead_id" json:"leadId"`
	SellerID          uuid.UUID          `gorm:"type:uuid;not null;index;column:seller_id" json:"sellerId"`
	Status            ConversationStatus `gorm:"type:varchar(50);not null;default:'ACTIVE';index" json:"status"`
	LastMessageAt     *time.Time         `gorm:"column:last_message_at" json:"lastMessageAt,omitempty"`
	LastSellerMessage *time.Time         `gorm:"column:last_seller_message" json:"lastSellerMessage,omitempty"`
	LastLeadMessage   *time.Time         `gorm:"column:last_lead_message" json:"lastLeadMessage,omitempty"`
	UnreadCount       int                `gorm:"not null;default:0;column:unread_count" json:"unreadCount"`
}

// SenderType identifies who sent a message
type SenderType string

const (
	SenderSeller SenderType = "SELLER"
	SenderLead   SenderType = "LEAD"
	SenderSystem SenderType = "SYSTEM"
)

// Message represents a single message in a conversation. ResponseTime is the
// number of seconds the seller took to answer the preceding lead message, only
// set on seller messages that answered one.
type Message struct {
	BaseModel
	ConversationID uuid.UUID  `gorm:"type:uuid;not null;index;column:conversation_id" json:"conversationId"`
	SenderType     SenderType `gorm:"type:varchar(50);not null;column:sender_type" json:"senderType"`
	Content        string     `gorm:"type:text" json:"content"`
	ResponseTime   *int       `gorm:"column:response_time" json:"responseTime,omitempty"`
}

// PlaybookScore represents an evaluation of how well a seller followed the
// sales playbook in a conversation, on a 0-10 scale.
type PlaybookScore struct {
	BaseModel
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index;column:conversation_id" json:"conversationId"`
	SellerID       uuid.UUID `gorm:"type:uuid;not null;index;column:seller_id" json:"sellerId"`
	Score          float64   `gorm:"not null" json:"score"`
}
