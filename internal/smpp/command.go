// Package smpp locates and decodes SMPP PDUs inside raw TCP payload bytes.
package smpp

// SMPP v3.4 command ids. This fixed set is what the boundary scanner
// recognizes; response variants carry the high bit.
const (
	CmdBindReceiver     uint32 = 0x00000001
	CmdBindReceiverResp uint32 = 0x80000001
	CmdDeliverSm        uint32 = 0x00000005
	CmdDeliverSmResp    uint32 = 0x80000005
	CmdUnbind           uint32 = 0x00000006
	CmdUnbindResp       uint32 = 0x80000006
	CmdEnquireLink      uint32 = 0x00000015
	CmdEnquireLinkResp  uint32 = 0x80000015
)

// UnknownCommand is the name reported for ids outside the table.
const UnknownCommand = "Unknown Command"

var commandNames = map[uint32]string{
	CmdBindReceiver:     "bind_receiver",
	CmdBindReceiverResp: "bind_receiver_resp",
	CmdDeliverSm:        "deliver_sm",
	CmdDeliverSmResp:    "deliver_sm_resp",
	CmdUnbind:           "unbind",
	CmdUnbindResp:       "unbind_resp",
	CmdEnquireLink:      "enquire_link",
	CmdEnquireLinkResp:  "enquire_link_resp",
}

// CommandName resolves a command id to its mnemonic.
func CommandName(id uint32) string {
	if name, ok := commandNames[id]; ok {
		return name
	}
	return UnknownCommand
}

func knownCommand(id uint32) bool {
	_, ok := commandNames[id]
	return ok
}

// esm_class subfields (SMPP v3.4 §5.2.12): messaging mode in bits 0-1,
// message type in bits 2-5.
var messagingModes = map[uint8]string{
	0x00: "Default SMSC Mode",
	0x01: "Datagram mode",
	0x02: "Forward (transaction) mode",
	0x03: "Store and Forward mode",
}

var messageTypes = map[uint8]string{
	0x00: "Default message type",
	0x01: "SMSC Delivery Receipt",
	0x02: "Delivery Acknowledgement",
	0x04: "Manual/User Acknowledgement",
	0x06: "Conversation Abort",
	0x08: "Intermediate Delivery Notification",
}

// Optional parameter tags (SMPP v3.4 §5.3.2).
const (
	TagUserMessageReference uint16 = 0x0204
	TagSarMsgRefNum         uint16 = 0x020C
	TagSarTotalSegments     uint16 = 0x020E
	TagSarSegmentSeqnum     uint16 = 0x020F
	TagMessagePayload       uint16 = 0x0424
	TagMessageState         uint16 = 0x0427
	TagReceiptedMessageID   uint16 = 0x001E
)

var tlvNames = map[uint16]string{
	TagReceiptedMessageID:   "receipted_message_id",
	TagUserMessageReference: "user_message_reference",
	TagSarMsgRefNum:         "sar_msg_ref_num",
	TagSarTotalSegments:     "sar_total_segments",
	TagSarSegmentSeqnum:     "sar_segment_seqnum",
	TagMessagePayload:       "message_payload",
	TagMessageState:         "message_state",
}

// TlvName resolves a known optional parameter tag, or "" for an unknown one.
func TlvName(tag uint16) string {
	return tlvNames[tag]
}
