package fldigi

// Remote methods used by the bridge.
const (
	MethodRX          = "main.rx"            // switch to receive
	MethodTX          = "main.tx"            // switch to transmit
	MethodGetTRXState = "main.get_trx_state" // "RX" or "TX"
	MethodAddTX       = "text.add_tx"        // append to the transmit buffer
	MethodClearTX     = "text.clear_tx"      // clear the transmit buffer
	MethodGetRXLength = "text.get_rx_length" // length of the receive buffer
	MethodGetRX       = "text.get_rx"        // slice of the receive buffer (start, end)
	MethodGetCarrier  = "modem.get_carrier"  // audio carrier in Hz
	MethodSetCarrier  = "modem.set_carrier"  // set audio carrier in Hz
)

// Transmit/receive states reported by main.get_trx_state.
const (
	StateRX = "RX"
	StateTX = "TX"
)

// ControlSwitchToRX, appended after outgoing text, makes fldigi drop back to
// receive once the transmit buffer has been sent.
const ControlSwitchToRX = "^r"
