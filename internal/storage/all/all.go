// Package all registers every storage backend with the factory. Binaries
// blank-import it so config alone selects the backend.
package all

import (
	_ "mediaload/internal/storage/mssql"
	_ "mediaload/internal/storage/postgres"
	_ "mediaload/internal/storage/sqlite"
)
