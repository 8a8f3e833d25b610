package manage

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"rental-manager/internal/models"
)

type ClientService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewClientService(db *gorm.DB, log *logrus.Logger) *ClientService {
	return &ClientService{db: db, log: log}
}

type CreateClientInput struct {
	Name  string            `validate:"required,max=200"`
	Email string            `validate:"required,email"`
	Phone string            `validate:"max=20"`
	Role  models.ClientRole `validate:"required,oneof=OWNER TENANT"`
}

func (s *ClientService) Create(in CreateClientInput) (*models.Client, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	client := &models.Client{
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
		Role:   in.Role,
		Active: true,
	}
	if err := s.db.Create(client).Error; err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"client_id": client.ID, "role": client.Role}).Info("client registered")
	return client, nil
}

// UpdateClientInput carries the editable identity fields. The role is fixed
// at registration.
type UpdateClientInput struct {
	Name  string `validate:"required,max=200"`
	Email string `validate:"required,email"`
	Phone string `validate:"max=20"`
}

func (s *ClientService) Update(id uint, in UpdateClientInput) (*models.Client, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		return nil, err
	}
	client.Name = in.Name
	client.Email = in.Email
	client.Phone = in.Phone
	if err := s.db.Save(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// Deactivate soft-deactivates a client. Deactivated clients keep their
// history but are excluded from new assignments.
func (s *ClientService) Deactivate(id uint) error {
	res := s.db.Model(&models.Client{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.log.WithField("client_id", id).Info("client deactivated")
	return nil
}

// Delete removes a client outright. It fails with a protected error while
// ownership history, agreements or ledger entries still reference the client.
func (s *ClientService) Delete(id uint) error {
	return s.db.Unscoped().Delete(&models.Client{}, id).Error
}

func (s *ClientService) Get(id uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// List returns clients filtered by role; activeOnly drops deactivated ones.
func (s *ClientService) List(role models.ClientRole, activeOnly bool) ([]models.Client, error) {
	q := s.db.Order("name")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var clients []models.Client
	if err := q.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}
