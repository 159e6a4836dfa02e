package repositories

import (
	"autoparts/app/models"
	"autoparts/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// EmailTaken reports whether a user with the given email already exists.
func (r *UserRepository) EmailTaken(email string) (bool, error) {
	var n int64
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).Count(&n)
	return n > 0, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return orm.DB().Save(user)
}

// Delete soft-deletes a user by primary key.
func (r *UserRepository) Delete(id uint) error {
	return orm.DB().Delete(&models.User{}, id)
}

// All returns one page of users, newest first, optionally narrowed by
// role and by a name/email substring.
func (r *UserRepository) All(role models.Role, search string, page, limit int) ([]models.User, orm.Pagination, error) {
	q := orm.DB().Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var users []models.User
	pagination, err := q.
		Order("id desc").
		GetWithPagination(&users, page, limit)
	return users, pagination, err
}

// Count returns the total number of users.
func (r *UserRepository) Count() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.User{}).Count(&n)
	return n, err
}

// CountByRole returns the number of users holding the given role.
func (r *UserRepository) CountByRole(role models.Role) (int64, error) {
	var n int64
	err := orm.DB().Model(&models.User{}).Where("role = ?", role).Count(&n)
	return n, err
}
