package category

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
)

type Service interface {
	Create(req *CreateCategoryRequest) (*Category, error)
	List() ([]Category, error)
	Delete(id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(req *CreateCategoryRequest) (*Category, error) {
	if _, err := s.repo.FindByName(req.Name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &Category{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	}
	if err := s.repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List() ([]Category, error) {
	return s.repo.List()
}

func (s *service) Delete(id string) error {
	if _, err := s.repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.repo.Delete(id)
}
