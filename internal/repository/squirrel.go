package repository

import sq "github.com/Masterminds/squirrel"

// psql builds every query in this package; Postgres needs $N placeholders
// rather than squirrel's default question marks.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
