package mocks

// PlainHasher stores passwords with a fixed prefix so tests stay fast.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return "plain:" + password, nil
}

func (PlainHasher) Verify(hash string, password string) bool {
	return hash == "plain:"+password
}
