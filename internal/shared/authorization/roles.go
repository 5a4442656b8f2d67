package authorization

type ActorRole string

const (
	RoleAdmin    ActorRole = "admin"
	RoleVendor   ActorRole = "vendor"
	RoleCustomer ActorRole = "customer"
)

func (r ActorRole) String() string {
	return string(r)
}

func (r ActorRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r ActorRole) IsVendor() bool {
	return r == RoleVendor
}

func (r ActorRole) IsValid() bool {
	return r == RoleAdmin || r == RoleVendor || r == RoleCustomer
}

func ParseActorRole(s string) ActorRole {
	role := ActorRole(s)
	if role.IsValid() {
		return role
	}
	return RoleCustomer
}
