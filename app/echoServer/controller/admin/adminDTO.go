package admin

type UpdateSettingsReq struct {
	SchoolName         string `json:"school_name" validate:"required"`
	AcademicYear       string `json:"academic_year" validate:"required"`
	LoanPeriodDays     int    `json:"loan_period_days" validate:"required,gt=0,lte=90"`
	MaxBooksPerStudent int    `json:"max_books_per_student" validate:"required,gt=0,lte=20"`
}

type CreateBookReq struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Copies int    `json:"copies" validate:"required,gt=0"`
}

type AddCopiesReq struct {
	Count int `json:"count" validate:"required,gt=0"`
}
