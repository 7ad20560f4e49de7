//go:build db2

package all

import _ "db2schema/internal/storage/db2"
