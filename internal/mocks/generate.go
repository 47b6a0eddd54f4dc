package mocks

//go:generate mockery --name ReviewStore --srcpkg github.com/aevon-lab/project-tally/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name AggregateStore --srcpkg github.com/aevon-lab/project-tally/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
