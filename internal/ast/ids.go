package ast

type (
	ItemID  uint32
	FieldID uint32
	ValueID uint32
	TypeID  uint32
)

const (
	NoItemID  ItemID  = 0
	NoFieldID FieldID = 0
	NoValueID ValueID = 0
	NoTypeID  TypeID  = 0
)

func (id ItemID) IsValid() bool  { return id != NoItemID }
func (id FieldID) IsValid() bool { return id != NoFieldID }
func (id ValueID) IsValid() bool { return id != NoValueID }
func (id TypeID) IsValid() bool  { return id != NoTypeID }
