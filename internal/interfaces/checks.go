package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/virtualcode/readingvault/internal/database/books"
	"github.com/virtualcode/readingvault/internal/database/lendings"
	"github.com/virtualcode/readingvault/internal/database/notes"
	"github.com/virtualcode/readingvault/internal/database/progress"
	"github.com/virtualcode/readingvault/internal/services"
)

// Book store implementations
var _ services.BookReader = (*books.Repository)(nil)
var _ services.BookWriter = (*books.Repository)(nil)

// Progress store implementations
var _ services.ProgressLister = (*progress.Repository)(nil)
var _ services.ProgressRecorder = (*progress.Repository)(nil)

// Lending store implementations
var _ services.LendingReader = (*lendings.Repository)(nil)
var _ services.LendingWriter = (*lendings.Repository)(nil)
var _ services.LendingRepository = (*lendings.Repository)(nil)

// Note store implementations
var _ services.NoteLister = (*notes.Repository)(nil)
