package biz

import (
	"go.uber.org/fx"
)

var Module = fx.Module("biz",
	fx.Provide(NewEngine),
	fx.Provide(NewIdentityService),
	fx.Provide(NewAuthService),
	fx.Provide(NewUserService),
	fx.Provide(NewStudentService),
	fx.Provide(NewGradeService),
	fx.Provide(NewPaymentService),
	fx.Provide(NewEnrollmentService),
)
