package domain

// Address is a value object embedded into orders, it has no identity of its own.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

func NewAddress(street, city, state, zipCode, country string) Address {
	return Address{
		Street:  street,
		City:    city,
		State:   state,
		ZipCode: zipCode,
		Country: country,
	}
}

func (a Address) IsZero() bool {
	return a == Address{}
}
