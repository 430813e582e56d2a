package domain

import "time"

type JdId int64

// JobDescription is owned by the user that submitted it; every read and
// write is scoped by UserId.
type JobDescription struct {
	Id          JdId
	UserId      UserId
	Title       string
	Description string
	Skills      map[string]int // skill name -> weight
	Created     time.Time
	Updated     time.Time // zero until the first update
}
