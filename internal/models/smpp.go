package models

// PacketSummary is one row in the packet list: a TCP-bearing capture record
// that is large enough to hold at least an SMPP header. The TCP payload is
// retained so the packet can be decoded on demand without re-reading the
// capture file.
type PacketSummary struct {
	Index       int    `json:"index"`
	SrcEndpoint string `json:"srcEndpoint"`
	DstEndpoint string `json:"dstEndpoint"`
	Length      int    `json:"length"`
	Info        string `json:"info"`
	Payload     []byte `json:"-"`
}

// SmppHeader is the fixed 16-byte PDU header, all fields big-endian on the
// wire.
type SmppHeader struct {
	CommandLength uint32 `json:"commandLength"`
	CommandID     uint32 `json:"commandId"`
	CommandName   string `json:"commandName"`
	CommandStatus uint32 `json:"commandStatus"`
	SequenceNo    uint32 `json:"sequenceNo"`
}

// SmppTlv is one optional tag/length/value parameter.
type SmppTlv struct {
	Tag    uint16 `json:"tag"`
	Name   string `json:"name"`
	Length uint16 `json:"length"`
	Value  []byte `json:"value"`
}

// ParsedPdu is one decoded PDU: header plus a body variant keyed by command.
type ParsedPdu struct {
	Header SmppHeader `json:"header"`
	Body   PduBody    `json:"body"`
}

// PduBody is a closed set of body variants. Callers switch on the concrete
// type; adding a command decoder means adding a variant here.
type PduBody interface {
	pduBody()
}

// Address is a TON/NPI/digits triple as carried in deliver_sm.
type Address struct {
	Ton  uint8  `json:"ton"`
	Npi  uint8  `json:"npi"`
	Addr string `json:"addr"`
}

// EsmClass is the raw esm_class byte plus its decoded subfields.
type EsmClass struct {
	Raw  uint8  `json:"raw"`
	Mode string `json:"mode"`
	Type string `json:"type"`
}

// DeliverSmBody holds every mandatory deliver_sm field in wire order, the
// optional parameters, and the rendered message text.
type DeliverSmBody struct {
	ServiceType          string    `json:"serviceType"`
	SourceAddr           Address   `json:"sourceAddr"`
	DestAddr             Address   `json:"destAddr"`
	EsmClass             EsmClass  `json:"esmClass"`
	ProtocolID           uint8     `json:"protocolId"`
	PriorityFlag         uint8     `json:"priorityFlag"`
	ScheduleDeliveryTime string    `json:"scheduleDeliveryTime"`
	ValidityPeriod       string    `json:"validityPeriod"`
	RegisteredDelivery   uint8     `json:"registeredDelivery"`
	ReplaceIfPresent     uint8     `json:"replaceIfPresent"`
	DataCoding           uint8     `json:"dataCoding"`
	SmDefaultMsgID       uint8     `json:"smDefaultMsgId"`
	SmLength             uint8     `json:"smLength"`
	ShortMessage         []byte    `json:"shortMessage"`
	Tlvs                 []SmppTlv `json:"tlvs"`
	DecodedMessage       string    `json:"decodedMessage"`
}

func (DeliverSmBody) pduBody() {}

// UnsupportedBody carries the undecoded remainder for commands that have no
// specific body decoder.
type UnsupportedBody struct {
	CommandName string `json:"commandName"`
	CommandID   uint32 `json:"commandId"`
	Note        string `json:"note"`
	RawBody     []byte `json:"rawBody"`
}

func (UnsupportedBody) pduBody() {}
