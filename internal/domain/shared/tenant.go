package shared

import "regexp"

// TenantSchemaPrefix is the prefix shared by every tenant schema name
const TenantSchemaPrefix = "tenant_"

var tenantSchemaPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidTenantSchema reports whether name is safe to use as a schema identifier
func ValidTenantSchema(name string) bool {
	return tenantSchemaPattern.MatchString(name)
}

// ValidateTenant returns ErrInvalidTenant unless name passes the schema allow-list
func ValidateTenant(name string) error {
	if !ValidTenantSchema(name) {
		return ErrInvalidTenant
	}
	return nil
}
