package models

import "time"

// Entry is one wash-processing record. Categorical fields hold master-list
// names as plain strings; optional dates are ISO "2006-01-02" strings or
// empty when not supplied.
type Entry struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`

	CustomerName string `json:"customer_name"`
	StyleNo      string `json:"style_no"`
	ContractNo   string `json:"contract_no"`

	CustomerOrderQty int `json:"customer_order_qty"`
	FactoryOrderQty  int `json:"factory_order_qty"`
	TotalShipmentQty int `json:"total_shipment_qty"`
	WashReceiveQty   int `json:"wash_receive_qty"`
	WashDeliveryQty  int `json:"wash_delivery_qty"`

	PlannedPCDDate          string `json:"planned_pcd_date,omitempty"`
	ActualPCDDate           string `json:"actual_pcd_date,omitempty"`
	WashReceiveDate         string `json:"wash_receive_date,omitempty"`
	WashClosingDate         string `json:"wash_closing_date,omitempty"`
	ShadeBandSubmissionDate string `json:"shade_band_submission_date,omitempty"`
	ShadeBandApprovalDate   string `json:"shade_band_approval_date,omitempty"`
	AgreedExFactory         string `json:"agreed_ex_factory,omitempty"`
	ActualExFactory         string `json:"actual_ex_factory,omitempty"`

	FactoryName    string `json:"factory_name"`
	LaundryName    string `json:"laundry_name"`
	DepartmentName string `json:"department_name"`
	WashCategory   string `json:"wash_category"`

	SubcontractWashing string `json:"subcontract_washing"` // YES or NO

	Issue1         string `json:"issue_1,omitempty"`
	Issue2         string `json:"issue_2,omitempty"`
	Issue3         string `json:"issue_3,omitempty"`
	OtherIssueText string `json:"other_issue_text,omitempty"`

	Remarks   string `json:"remarks,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
}
