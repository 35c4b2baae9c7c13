package postgres

import (
	"burpp/app"
	"burpp/domain"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PgRepository struct {
	db *sqlx.DB
}

func NewPgRepository(host, database, user, password, port string) *PgRepository {
	db := sqlx.MustConnect("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, database,
	))

	// Connection pool configuration
	// With 3 replicas × 15 conns = 45 total connections (safer for default PG max_connections=100)
	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PgRepository{db: db}
}

func (r *PgRepository) Close() error {
	return r.db.Close()
}

// GetPoolStats returns current connection pool statistics
func (r *PgRepository) GetPoolStats() map[string]interface{} {
	stats := r.db.Stats()
	return map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		"max_idle_closed":      stats.MaxIdleClosed,
		"max_lifetime_closed":  stats.MaxLifetimeClosed,
	}
}

// ---- vendors ----

func (r *PgRepository) CreateVendor(ctx context.Context, req *app.RegisterVendorRequest) (domain.VendorProfile, error) {
	var v domain.VendorProfile
	query := `
		INSERT INTO vendor_profiles (
			user_id, business_name, bio, zip_code,
			offers_virtual_services, offers_in_person_services,
			latitude, longitude, service_radius,
			service_categories, hourly_rate
		) VALUES (
			:user_id, :business_name, :bio, :zip_code,
			:offers_virtual_services, :offers_in_person_services,
			:latitude, :longitude, :service_radius,
			:service_categories, :hourly_rate
		) RETURNING *`

	params := map[string]interface{}{
		"user_id":                   req.UserID,
		"business_name":             req.BusinessName,
		"bio":                       req.Bio,
		"zip_code":                  req.ZipCode,
		"offers_virtual_services":   req.OffersVirtualServices,
		"offers_in_person_services": req.OffersInPersonServices,
		"latitude":                  req.Latitude,
		"longitude":                 req.Longitude,
		"service_radius":            req.ServiceRadius,
		"service_categories":        pq.StringArray(req.ServiceCategories),
		"hourly_rate":               req.HourlyRate,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return v, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&v)
	}
	return v, err
}

func (r *PgRepository) GetVendor(ctx context.Context, id string) (domain.VendorProfile, error) {
	var v domain.VendorProfile
	query := `SELECT * FROM vendor_profiles WHERE id = $1`

	err := r.db.GetContext(ctx, &v, query, id)
	return v, err
}

func (r *PgRepository) GetVendorByUserID(ctx context.Context, userID string) (domain.VendorProfile, error) {
	var v domain.VendorProfile
	query := `SELECT * FROM vendor_profiles WHERE user_id = $1`

	err := r.db.GetContext(ctx, &v, query, userID)
	return v, err
}

func (r *PgRepository) UpdateVendor(ctx context.Context, vendor domain.VendorProfile) (domain.VendorProfile, error) {
	query := `
        UPDATE vendor_profiles SET
            business_name = :business_name,
            bio = :bio,
            zip_code = :zip_code,
            offers_virtual_services = :offers_virtual_services,
            offers_in_person_services = :offers_in_person_services,
            latitude = :latitude,
            longitude = :longitude,
            service_radius = :service_radius,
            service_categories = :service_categories,
            hourly_rate = :hourly_rate,
            updated_at = :updated_at
        WHERE id = :id
        RETURNING *`

	params := map[string]interface{}{
		"id":                        vendor.ID,
		"business_name":             vendor.BusinessName,
		"bio":                       vendor.Bio,
		"zip_code":                  vendor.ZipCode,
		"offers_virtual_services":   vendor.OffersVirtualServices,
		"offers_in_person_services": vendor.OffersInPersonServices,
		"latitude":                  vendor.Latitude,
		"longitude":                 vendor.Longitude,
		"service_radius":            vendor.ServiceRadius,
		"service_categories":        vendor.ServiceCategories,
		"hourly_rate":               vendor.HourlyRate,
		"updated_at":                vendor.UpdatedAt,
	}

	var updated domain.VendorProfile
	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return updated, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&updated)
		return updated, err
	}
	return updated, sql.ErrNoRows
}

func (r *PgRepository) SetVendorApproval(ctx context.Context, id string, approved bool) (domain.VendorProfile, error) {
	var v domain.VendorProfile
	query := `
		UPDATE vendor_profiles
		SET admin_approved = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING *`

	err := r.db.GetContext(ctx, &v, query, id, approved)
	return v, err
}

func (r *PgRepository) GetApprovedVendors(ctx context.Context, categoryID string) ([]domain.VendorProfile, error) {
	vendors := make([]domain.VendorProfile, 0)

	if categoryID == "" {
		query := `SELECT * FROM vendor_profiles WHERE admin_approved = true ORDER BY created_at DESC`
		err := r.db.SelectContext(ctx, &vendors, query)
		return vendors, err
	}

	query := `
		SELECT * FROM vendor_profiles
		WHERE admin_approved = true AND $1 = ANY(service_categories)
		ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &vendors, query, categoryID)
	return vendors, err
}

func (r *PgRepository) GetApprovedVendorsPage(ctx context.Context, categoryID string, limit, offset int) ([]domain.VendorProfile, error) {
	vendors := make([]domain.VendorProfile, 0)

	if categoryID == "" {
		query := `
			SELECT * FROM vendor_profiles
			WHERE admin_approved = true
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		err := r.db.SelectContext(ctx, &vendors, query, limit, offset)
		return vendors, err
	}

	query := `
		SELECT * FROM vendor_profiles
		WHERE admin_approved = true AND $1 = ANY(service_categories)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &vendors, query, categoryID, limit, offset)
	return vendors, err
}

func (r *PgRepository) CountApprovedVendors(ctx context.Context, categoryID string) (int, error) {
	var count int

	if categoryID == "" {
		query := `SELECT COUNT(*) FROM vendor_profiles WHERE admin_approved = true`
		err := r.db.GetContext(ctx, &count, query)
		return count, err
	}

	query := `
		SELECT COUNT(*) FROM vendor_profiles
		WHERE admin_approved = true AND $1 = ANY(service_categories)`
	err := r.db.GetContext(ctx, &count, query, categoryID)
	return count, err
}

func (r *PgRepository) GetVendors(ctx context.Context, limit, offset int) ([]domain.VendorProfile, error) {
	vendors := make([]domain.VendorProfile, 0)
	query := `SELECT * FROM vendor_profiles ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := r.db.SelectContext(ctx, &vendors, query, limit, offset)
	return vendors, err
}

func (r *PgRepository) CountVendors(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM vendor_profiles`

	err := r.db.GetContext(ctx, &count, query)
	return count, err
}

// ---- categories ----

func (r *PgRepository) GetCategories(ctx context.Context, limit, offset int) ([]domain.Category, error) {
	categories := make([]domain.Category, 0)
	query := `
		SELECT * FROM categories
		WHERE active = true
		ORDER BY featured DESC, name ASC LIMIT $1 OFFSET $2`

	err := r.db.SelectContext(ctx, &categories, query, limit, offset)
	return categories, err
}

func (r *PgRepository) CountCategories(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM categories WHERE active = true`

	err := r.db.GetContext(ctx, &count, query)
	return count, err
}

func (r *PgRepository) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	var c domain.Category
	query := `SELECT * FROM categories WHERE id = $1`

	err := r.db.GetContext(ctx, &c, query, id)
	return c, err
}

func (r *PgRepository) CreateCategory(ctx context.Context, req *app.CreateCategoryRequest) (domain.Category, error) {
	var c domain.Category
	query := `
		INSERT INTO categories (name, description, parent_id, active, featured)
		VALUES (:name, :description, :parent_id, :active, :featured)
		RETURNING *`

	rows, err := r.db.NamedQueryContext(ctx, query, req)
	if err != nil {
		return c, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&c)
	}
	return c, err
}

func (r *PgRepository) UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	query := `
        UPDATE categories SET
            name = :name,
            description = :description,
            parent_id = :parent_id,
            active = :active,
            featured = :featured,
            updated_at = :updated_at
        WHERE id = :id
        RETURNING *`

	params := map[string]interface{}{
		"id":          category.ID,
		"name":        category.Name,
		"description": category.Description,
		"parent_id":   category.ParentID,
		"active":      category.Active,
		"featured":    category.Featured,
		"updated_at":  category.UpdatedAt,
	}

	var updated domain.Category
	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return updated, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&updated)
		return updated, err
	}
	return updated, sql.ErrNoRows
}

func (r *PgRepository) DeleteCategory(ctx context.Context, id string) error {
	query := `DELETE FROM categories WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// ---- reviews ----

func (r *PgRepository) CreateReview(ctx context.Context, vendorID, customerID string, rating int, comment *string) (domain.Review, error) {
	var review domain.Review
	query := `
		INSERT INTO reviews (vendor_id, customer_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING *`

	err := r.db.GetContext(ctx, &review, query, vendorID, customerID, rating, comment)
	return review, err
}

func (r *PgRepository) GetVendorReviews(ctx context.Context, vendorID string, limit, offset int) ([]domain.Review, error) {
	reviews := make([]domain.Review, 0)
	query := `
		SELECT * FROM reviews
		WHERE vendor_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &reviews, query, vendorID, limit, offset)
	return reviews, err
}

func (r *PgRepository) CountVendorReviews(ctx context.Context, vendorID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM reviews WHERE vendor_id = $1`

	err := r.db.GetContext(ctx, &count, query, vendorID)
	return count, err
}

func (r *PgRepository) GetVendorAverageRating(ctx context.Context, vendorID string) (float64, error) {
	var rating float64
	query := `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE vendor_id = $1`

	err := r.db.GetContext(ctx, &rating, query, vendorID)
	return rating, err
}

func (r *PgRepository) GetCustomerReview(ctx context.Context, vendorID, customerID string) (domain.Review, error) {
	var review domain.Review
	query := `SELECT * FROM reviews WHERE vendor_id = $1 AND customer_id = $2`

	err := r.db.GetContext(ctx, &review, query, vendorID, customerID)
	return review, err
}

// ---- conversations / messages ----

func (r *PgRepository) CreateConversation(ctx context.Context, customerID, vendorID string) (domain.Conversation, error) {
	var c domain.Conversation
	query := `
		INSERT INTO conversations (customer_id, vendor_id)
		VALUES ($1, $2)
		RETURNING *`

	err := r.db.GetContext(ctx, &c, query, customerID, vendorID)
	return c, err
}

func (r *PgRepository) GetConversation(ctx context.Context, id string) (domain.Conversation, error) {
	var c domain.Conversation
	query := `SELECT * FROM conversations WHERE id = $1`

	err := r.db.GetContext(ctx, &c, query, id)
	return c, err
}

func (r *PgRepository) FindConversation(ctx context.Context, customerID, vendorID string) (domain.Conversation, error) {
	var c domain.Conversation
	query := `SELECT * FROM conversations WHERE customer_id = $1 AND vendor_id = $2`

	err := r.db.GetContext(ctx, &c, query, customerID, vendorID)
	return c, err
}

func (r *PgRepository) GetUserConversations(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error) {
	conversations := make([]domain.Conversation, 0)
	query := `
		SELECT c.* FROM conversations c
		LEFT JOIN vendor_profiles v ON v.id = c.vendor_id
		WHERE c.customer_id = $1 OR v.user_id = $1
		ORDER BY c.updated_at DESC LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &conversations, query, userID, limit, offset)
	return conversations, err
}

func (r *PgRepository) CountUserConversations(ctx context.Context, userID string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM conversations c
		LEFT JOIN vendor_profiles v ON v.id = c.vendor_id
		WHERE c.customer_id = $1 OR v.user_id = $1`

	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *PgRepository) CreateMessage(ctx context.Context, conversationID, senderID, content string) (domain.Message, error) {
	var m domain.Message
	query := `
		INSERT INTO messages (conversation_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING *`

	err := r.db.GetContext(ctx, &m, query, conversationID, senderID, content)
	if err != nil {
		return m, err
	}

	touch := `UPDATE conversations SET updated_at = NOW() WHERE id = $1`
	_, err = r.db.ExecContext(ctx, touch, conversationID)
	return m, err
}

func (r *PgRepository) GetConversationMessages(ctx context.Context, conversationID string, limit, offset int) ([]domain.Message, error) {
	messages := make([]domain.Message, 0)
	query := `
		SELECT * FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &messages, query, conversationID, limit, offset)
	return messages, err
}

func (r *PgRepository) CountConversationMessages(ctx context.Context, conversationID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM messages WHERE conversation_id = $1`

	err := r.db.GetContext(ctx, &count, query, conversationID)
	return count, err
}

func (r *PgRepository) MarkConversationRead(ctx context.Context, conversationID, userID string) error {
	query := `
		UPDATE messages SET read = true
		WHERE conversation_id = $1 AND sender_id <> $2 AND read = false`

	_, err := r.db.ExecContext(ctx, query, conversationID, userID)
	return err
}

// ---- favorites ----

func (r *PgRepository) CreateFavorite(ctx context.Context, userID, vendorID string) (domain.Favorite, error) {
	var f domain.Favorite
	// Idempotent: re-favoriting returns the existing row.
	query := `
		INSERT INTO favorites (user_id, vendor_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, vendor_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING *`

	err := r.db.GetContext(ctx, &f, query, userID, vendorID)
	return f, err
}

func (r *PgRepository) DeleteFavorite(ctx context.Context, userID, vendorID string) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND vendor_id = $2`

	_, err := r.db.ExecContext(ctx, query, userID, vendorID)
	return err
}

func (r *PgRepository) GetUserFavorites(ctx context.Context, userID string, limit, offset int) ([]domain.VendorProfile, error) {
	vendors := make([]domain.VendorProfile, 0)
	query := `
		SELECT v.* FROM vendor_profiles v
		JOIN favorites f ON f.vendor_id = v.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &vendors, query, userID, limit, offset)
	return vendors, err
}

func (r *PgRepository) CountUserFavorites(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM favorites WHERE user_id = $1`

	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

// ---- notifications ----

func (r *PgRepository) CreateNotification(ctx context.Context, userID, kind, payload string) (domain.Notification, error) {
	var n domain.Notification
	query := `
		INSERT INTO notifications (user_id, kind, payload)
		VALUES ($1, $2, $3)
		RETURNING *`

	err := r.db.GetContext(ctx, &n, query, userID, kind, payload)
	return n, err
}

func (r *PgRepository) GetUserNotifications(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error) {
	notifications := make([]domain.Notification, 0)
	query := `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &notifications, query, userID, limit, offset)
	return notifications, err
}

func (r *PgRepository) CountUserNotifications(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1`

	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}
