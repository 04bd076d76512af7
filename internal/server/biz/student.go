package biz

import (
	"context"

	"go.uber.org/fx"

	"github.com/campushq/campushub/internal/authz"
	"github.com/campushq/campushub/internal/store"
)

// GetStudentQuery reads one student record.
type GetStudentQuery struct {
	Student int
}

func (GetStudentQuery) RequestName() string { return "students.get" }

func (q GetStudentQuery) StudentID() int { return q.Student }

type StudentServiceParams struct {
	fx.In

	Store  *store.Store
	Engine *authz.Engine
}

func NewStudentService(params StudentServiceParams) *StudentService {
	return &StudentService{
		AbstractService: &AbstractService{store: params.Store},
		engine:          params.Engine,
	}
}

type StudentService struct {
	*AbstractService

	engine *authz.Engine
}

func (s *StudentService) GetStudent(ctx context.Context, query GetStudentQuery) (*store.Student, error) {
	if err := s.engine.AuthorizeContext(ctx, query); err != nil {
		return nil, err
	}

	ident := authz.MustGetIdentity(ctx)

	return s.store.GetStudent(ctx, ident.TenantID, query.Student)
}
