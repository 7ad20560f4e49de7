// Package all wires the built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete storage backend to run,
// which in turn register their factories with the storage package.
//
// Importing this package makes the following storage kinds available:
//
//   - "sqlite"   (db2schema/internal/storage/sqlite)
//   - "postgres" (db2schema/internal/storage/postgres)
//   - "mssql"    (db2schema/internal/storage/mssql)
//   - "mysql"    (db2schema/internal/storage/mysql)
//   - "db2"      (db2schema/internal/storage/db2, only with -tags db2)
//
// Typical usage:
//
//	import _ "db2schema/internal/storage/all"
//
//	repo, err := storage.New(ctx, storage.ConfigFrom(&cfg.Database))
//	if err != nil { ... }
//	defer repo.Close()
package all

import (
	_ "db2schema/internal/storage/mssql"
	_ "db2schema/internal/storage/mysql"
	_ "db2schema/internal/storage/postgres"
	_ "db2schema/internal/storage/sqlite"
)
