package x12

import "regexp"

// The base segment registry declares the field schema for every
// segment used by the supported healthcare transactions. Entries are
// registered once at startup and immutable afterward; loop-local
// overrides are layered on top of these by the transaction
// definitions.
//
// Field names follow the implementation guide descriptions
// (`entity_type_qualifier`, `hierarchical_level_code`, ...), which
// become the record keys in model payloads.
var segmentSpecs = map[string]*SegmentSpec{}

func registerSegment(s *SegmentSpec) *SegmentSpec {
	if _, exists := segmentSpecs[s.ID]; exists {
		panic("segment spec " + s.ID + " already registered")
	}
	segmentSpecs[s.ID] = s
	return s
}

// field is shorthand for a FieldSpec with length bounds
func field(
	name string,
	dataType DataType,
	usage Usage,
	minLen int,
	maxLen int,
) *FieldSpec {
	return &FieldSpec{
		Name:      name,
		Type:      dataType,
		Usage:     usage,
		MinLength: minLen,
		MaxLength: maxLen,
	}
}

// enumField is shorthand for an identifier field with a code table
func enumField(name string, usage Usage, codes ...string) *FieldSpec {
	maxLen := 0
	for _, c := range codes {
		if len(c) > maxLen {
			maxLen = len(c)
		}
	}
	return &FieldSpec{
		Name:       name,
		Type:       Identifier,
		Usage:      usage,
		MinLength:  1,
		MaxLength:  maxLen,
		ValidCodes: codes,
	}
}

var hlChildCodePattern = regexp.MustCompile(`^[01]$`)

var (
	stSegment = registerSegment(&SegmentSpec{
		ID:          stSegmentId,
		Description: "Transaction Set Header",
		Fields: []*FieldSpec{
			field("transaction_set_identifier_code", Identifier, Required, 3, 3),
			field("transaction_set_control_number", String, Required, 4, 9),
			field("implementation_convention_reference", String, Required, 1, 35),
		},
	})

	seSegment = registerSegment(&SegmentSpec{
		ID:          seSegmentId,
		Description: "Transaction Set Trailer",
		Fields: []*FieldSpec{
			field("transaction_segment_count", Numeric, Required, 1, 10),
			field("transaction_set_control_number", String, Required, 4, 9),
		},
	})

	bhtSegment = registerSegment(&SegmentSpec{
		ID:          "BHT",
		Description: "Beginning of Hierarchical Transaction",
		Fields: []*FieldSpec{
			field("hierarchical_structure_code", Identifier, Required, 4, 4),
			field("transaction_set_purpose_code", Identifier, Required, 2, 2),
			field("submitter_transactional_identifier", String, Situational, 1, 50),
			field("transaction_set_creation_date", Date, Required, 8, 8),
			field("transaction_set_creation_time", Time, Required, 4, 8),
			field("transaction_type_code", Identifier, Situational, 2, 2),
		},
	})

	hlSegment = registerSegment(&SegmentSpec{
		ID:          hlSegmentId,
		Description: "Hierarchical Level",
		Fields: []*FieldSpec{
			field("hierarchical_id_number", String, Required, 1, 12),
			field("hierarchical_parent_id_number", String, Situational, 1, 12),
			field("hierarchical_level_code", Identifier, Required, 1, 2),
			&FieldSpec{
				Name:      "hierarchical_child_code",
				Type:      Identifier,
				Usage:     Situational,
				MinLength: 1,
				MaxLength: 1,
				Pattern:   hlChildCodePattern,
			},
		},
	})

	nm1Segment = registerSegment(&SegmentSpec{
		ID:          "NM1",
		Description: "Entity Name and Identification Number",
		Fields: []*FieldSpec{
			field("entity_identifier_code", Identifier, Required, 2, 3),
			enumField("entity_type_qualifier", Required, "1", "2"),
			field("name_last_or_organization_name", String, Required, 1, 60),
			field("name_first", String, Situational, 1, 35),
			field("name_middle", String, Situational, 1, 25),
			field("name_prefix", String, Situational, 1, 10),
			field("name_suffix", String, Situational, 1, 10),
			field("identification_code_qualifier", Identifier, Situational, 1, 2),
			field("identification_code", String, Situational, 2, 80),
			field("entity_relationship_code", Identifier, Situational, 2, 2),
		},
		Validators: []SegmentValidator{validateNM1EntityType},
	})

	refSegment = registerSegment(&SegmentSpec{
		ID:          "REF",
		Description: "Reference Identification",
		Fields: []*FieldSpec{
			field("reference_identification_qualifier", Identifier, Required, 2, 3),
			field("reference_identification", String, Required, 1, 50),
			field("description", String, Situational, 1, 80),
		},
	})

	n1Segment = registerSegment(&SegmentSpec{
		ID:          "N1",
		Description: "Party Identification",
		Fields: []*FieldSpec{
			field("entity_identifier_code", Identifier, Required, 2, 3),
			field("name", String, Situational, 1, 60),
			field("identification_code_qualifier", Identifier, Situational, 1, 2),
			field("identification_code", String, Situational, 2, 80),
		},
	})

	n3Segment = registerSegment(&SegmentSpec{
		ID:          "N3",
		Description: "Party Location",
		Fields: []*FieldSpec{
			field("address_information_1", String, Required, 1, 55),
			field("address_information_2", String, Situational, 1, 55),
		},
	})

	n4Segment = registerSegment(&SegmentSpec{
		ID:          "N4",
		Description: "Geographic Location",
		Fields: []*FieldSpec{
			field("city_name", String, Required, 2, 30),
			field("state_province_code", Identifier, Situational, 2, 2),
			field("postal_code", Identifier, Situational, 3, 15),
			field("country_code", Identifier, Situational, 2, 3),
			field("location_qualifier", Identifier, Situational, 1, 2),
			field("location_identifier", String, Situational, 1, 30),
			field("country_subdivision_code", Identifier, Situational, 1, 3),
		},
	})

	perSegment = registerSegment(&SegmentSpec{
		ID:          "PER",
		Description: "Administrative Communications Contact",
		Fields: []*FieldSpec{
			field("contact_function_code", Identifier, Required, 2, 2),
			field("name", String, Situational, 1, 60),
			field("communication_number_qualifier_1", Identifier, Situational, 2, 2),
			field("communication_number_1", String, Situational, 1, 256),
			field("communication_number_qualifier_2", Identifier, Situational, 2, 2),
			field("communication_number_2", String, Situational, 1, 256),
			field("communication_number_qualifier_3", Identifier, Situational, 2, 2),
			field("communication_number_3", String, Situational, 1, 256),
			field("contact_inquiry_reference", String, Situational, 1, 20),
		},
	})

	prvSegment = registerSegment(&SegmentSpec{
		ID:          "PRV",
		Description: "Provider Information",
		Fields: []*FieldSpec{
			field("provider_code", Identifier, Required, 1, 3),
			field("reference_identification_qualifier", Identifier, Situational, 2, 3),
			field("reference_identification", String, Situational, 1, 50),
		},
	})

	trnSegment = registerSegment(&SegmentSpec{
		ID:          "TRN",
		Description: "Trace Number",
		Fields: []*FieldSpec{
			field("trace_type_code", Identifier, Required, 1, 2),
			field("reference_identification_1", String, Required, 1, 50),
			field("originating_company_identifier", String, Situational, 10, 10),
			field("reference_identification_2", String, Situational, 1, 50),
		},
	})

	dmgSegment = registerSegment(&SegmentSpec{
		ID:          "DMG",
		Description: "Demographic Information",
		Fields: []*FieldSpec{
			enumField("date_time_period_format_qualifier", Situational, "D8"),
			field("date_time_period", String, Situational, 1, 35),
			enumField("gender_code", Situational, "F", "M"),
			field("marital_status_code", Identifier, Situational, 1, 1),
			field("race_or_ethnicity", String, Situational, 1, 10),
			field("citizenship_status_code", Identifier, Situational, 1, 2),
			field("country_code", Identifier, Situational, 2, 3),
			field("basis_of_verification_code", Identifier, Situational, 1, 2),
			field("quantity", Decimal, Situational, 1, 15),
			enumField("code_list_qualifier_code", Situational, "REC"),
			field("race_or_ethnicity_code", String, Situational, 1, 30),
		},
		Validators: []SegmentValidator{
			validateDatePeriodPair,
			validateDatePeriodFormat,
		},
	})

	dtpSegment = registerSegment(&SegmentSpec{
		ID:          "DTP",
		Description: "Date or Time Period",
		Fields: []*FieldSpec{
			field("date_time_qualifier", Identifier, Required, 3, 3),
			enumField("date_time_period_format_qualifier", Required, "D8", "RD8"),
			field("date_time_period", String, Required, 1, 35),
		},
		Validators: []SegmentValidator{validateDatePeriodFormat},
	})

	dtmSegment = registerSegment(&SegmentSpec{
		ID:          "DTM",
		Description: "Date/Time Reference",
		Fields: []*FieldSpec{
			field("date_time_qualifier", Identifier, Required, 3, 3),
			field("date", Date, Required, 8, 8),
		},
	})

	eqSegment = registerSegment(&SegmentSpec{
		ID:          "EQ",
		Description: "Eligibility Inquiry",
		Fields: []*FieldSpec{
			&FieldSpec{
				Name:      "service_type_code",
				Type:      Identifier,
				Usage:     Situational,
				MinLength: 1,
				MaxLength: 2,
				Repeating: true,
			},
			// composite; preserved verbatim
			field("medical_procedure_id", String, Situational, 1, 50),
			field("coverage_level_code", Identifier, Situational, 1, 3),
			field("insurance_type_code", Identifier, Situational, 1, 3),
			// composite; preserved verbatim
			field("diagnosis_code_pointer", String, Situational, 1, 20),
		},
		Validators: []SegmentValidator{validateEQServiceOrProcedure},
	})

	ebSegment = registerSegment(&SegmentSpec{
		ID:          "EB",
		Description: "Eligibility or Benefit Information",
		Fields: []*FieldSpec{
			field("eligibility_benefit_information", Identifier, Required, 1, 2),
			field("coverage_level_code", Identifier, Situational, 1, 3),
			&FieldSpec{
				Name:      "service_type_code",
				Type:      Identifier,
				Usage:     Situational,
				MinLength: 1,
				MaxLength: 2,
				Repeating: true,
			},
			field("insurance_type_code", Identifier, Situational, 1, 3),
			field("plan_coverage_description", String, Situational, 1, 50),
			field("time_period_qualifier", Identifier, Situational, 1, 2),
			field("benefit_amount", Decimal, Situational, 1, 18),
			field("benefit_percent", Decimal, Situational, 1, 10),
			field("quantity_qualifier", Identifier, Situational, 2, 2),
			field("benefit_quantity", Decimal, Situational, 1, 15),
			enumField("authorization_certification_indicator", Situational, "N", "U", "Y"),
			enumField("in_plan_network_indicator", Situational, "N", "U", "W", "Y"),
			// composite; preserved verbatim
			field("procedure_identifier", String, Situational, 1, 50),
		},
	})

	iiiSegment = registerSegment(&SegmentSpec{
		ID:          "III",
		Description: "Information",
		Fields: []*FieldSpec{
			enumField("code_list_qualifier_code", Situational, "GR", "NI", "ZZ"),
			field("industry_code", String, Situational, 1, 30),
		},
	})

	aaaSegment = registerSegment(&SegmentSpec{
		ID:          "AAA",
		Description: "Request Validation",
		Fields: []*FieldSpec{
			enumField("response_code", Required, "N", "Y"),
			field("agency_qualifier_code", Identifier, Situational, 1, 2),
			field("reject_reason_code", Identifier, Required, 2, 2),
			field("follow_up_action_code", Identifier, Required, 1, 1),
		},
	})

	amtSegment = registerSegment(&SegmentSpec{
		ID:          "AMT",
		Description: "Monetary Amount Information",
		Fields: []*FieldSpec{
			field("amount_qualifier_code", Identifier, Required, 1, 3),
			field("monetary_amount", Decimal, Required, 1, 18),
			field("credit_debit_flag_code", Identifier, Situational, 1, 1),
		},
	})

	insSegment = registerSegment(&SegmentSpec{
		ID:          "INS",
		Description: "Insured Benefit",
		Fields: []*FieldSpec{
			enumField("member_indicator", Required, "N", "Y"),
			field("individual_relationship_code", Identifier, Required, 2, 2),
			field("maintenance_type_code", Identifier, Situational, 3, 3),
			field("maintenance_reason_code", Identifier, Situational, 2, 3),
			field("benefit_status_code", Identifier, Situational, 1, 1),
			field("medicare_status_code", String, Situational, 1, 4),
			field("cobra_qualifying_event_code", Identifier, Situational, 1, 2),
			field("employment_status_code", Identifier, Situational, 2, 2),
			field("student_status_code", Identifier, Situational, 1, 1),
			enumField("handicap_indicator", Situational, "N", "Y"),
			enumField("date_time_period_format_qualifier", Situational, "D8"),
			field("member_individual_death_date", String, Situational, 8, 8),
			field("confidentiality_code", Identifier, Situational, 1, 1),
			field("city_name", String, Situational, 2, 30),
			field("state_province_code", Identifier, Situational, 2, 2),
			field("country_code", Identifier, Situational, 2, 3),
			field("birth_sequence_number", Numeric, Situational, 1, 9),
		},
	})

	hiSegment = registerSegment(&SegmentSpec{
		ID:          "HI",
		Description: "Health Care Information Codes",
		Fields: []*FieldSpec{
			// composites; preserved verbatim
			field("health_care_code_1", String, Required, 1, 100),
			field("health_care_code_2", String, Situational, 1, 100),
			field("health_care_code_3", String, Situational, 1, 100),
			field("health_care_code_4", String, Situational, 1, 100),
			field("health_care_code_5", String, Situational, 1, 100),
			field("health_care_code_6", String, Situational, 1, 100),
			field("health_care_code_7", String, Situational, 1, 100),
			field("health_care_code_8", String, Situational, 1, 100),
			field("health_care_code_9", String, Situational, 1, 100),
			field("health_care_code_10", String, Situational, 1, 100),
			field("health_care_code_11", String, Situational, 1, 100),
			field("health_care_code_12", String, Situational, 1, 100),
		},
	})

	msgSegment = registerSegment(&SegmentSpec{
		ID:          "MSG",
		Description: "Message Text",
		Fields: []*FieldSpec{
			field("free_form_message_text", String, Required, 1, 264),
		},
	})

	hsdSegment = registerSegment(&SegmentSpec{
		ID:          "HSD",
		Description: "Health Care Services Delivery",
		Fields: []*FieldSpec{
			field("quantity_qualifier", Identifier, Situational, 2, 2),
			field("quantity", Decimal, Situational, 1, 15),
			field("unit_basis_measurement_code", Identifier, Situational, 2, 2),
			field("sample_selection_modulus", Decimal, Situational, 1, 6),
			field("time_period_qualifier", Identifier, Situational, 1, 2),
			field("period_count", Numeric, Situational, 1, 3),
			field("delivery_frequency_code", Identifier, Situational, 1, 1),
			field("delivery_pattern_time_code", Identifier, Situational, 1, 1),
		},
	})

	lsSegment = registerSegment(&SegmentSpec{
		ID:          "LS",
		Description: "Loop Header",
		Fields: []*FieldSpec{
			field("loop_id_code", String, Required, 1, 6),
		},
	})

	leSegment = registerSegment(&SegmentSpec{
		ID:          "LE",
		Description: "Loop Trailer",
		Fields: []*FieldSpec{
			field("loop_id_code", String, Required, 1, 6),
		},
	})

	lxSegment = registerSegment(&SegmentSpec{
		ID:          "LX",
		Description: "Transaction Set Line Number",
		Fields: []*FieldSpec{
			field("assigned_number", Numeric, Required, 1, 6),
		},
	})

	bprSegment = registerSegment(&SegmentSpec{
		ID:          "BPR",
		Description: "Financial Information",
		Fields: []*FieldSpec{
			field("transaction_handling_code", Identifier, Required, 1, 2),
			field("total_actual_provider_payment_amount", Decimal, Required, 1, 18),
			enumField("credit_debit_flag_code", Required, "C", "D"),
			field("payment_method_code", Identifier, Required, 3, 3),
			field("payment_format_code", Identifier, Situational, 1, 10),
			field("sender_dfi_qualifier", Identifier, Situational, 2, 2),
			field("sender_dfi_id", String, Situational, 3, 12),
			field("sender_account_qualifier", Identifier, Situational, 1, 3),
			field("sender_account_number", String, Situational, 1, 35),
			field("payer_identifier", String, Situational, 10, 10),
			field("originating_company_supplemental_code", String, Situational, 9, 9),
			field("receiver_dfi_qualifier", Identifier, Situational, 2, 2),
			field("receiver_dfi_id", String, Situational, 3, 12),
			field("receiver_account_qualifier", Identifier, Situational, 1, 3),
			field("receiver_account_number", String, Situational, 1, 35),
			field("check_issue_or_eft_effective_date", Date, Situational, 8, 8),
		},
	})

	curSegment = registerSegment(&SegmentSpec{
		ID:          "CUR",
		Description: "Currency",
		Fields: []*FieldSpec{
			field("entity_identifier_code", Identifier, Required, 2, 3),
			field("currency_code", Identifier, Required, 3, 3),
		},
	})

	rdmSegment = registerSegment(&SegmentSpec{
		ID:          "RDM",
		Description: "Remittance Delivery Method",
		Fields: []*FieldSpec{
			field("report_transmission_code", Identifier, Required, 1, 2),
			field("name", String, Situational, 1, 60),
			field("communication_number", String, Situational, 1, 256),
		},
	})

	clpSegment = registerSegment(&SegmentSpec{
		ID:          "CLP",
		Description: "Claim Payment Information",
		Fields: []*FieldSpec{
			field("patient_control_number", String, Required, 1, 38),
			field("claim_status_code", Identifier, Required, 1, 2),
			field("total_claim_charge_amount", Decimal, Required, 1, 18),
			field("claim_payment_amount", Decimal, Required, 1, 18),
			field("patient_responsibility_amount", Decimal, Situational, 1, 18),
			field("claim_filing_indicator_code", Identifier, Required, 1, 2),
			field("payer_claim_control_number", String, Situational, 1, 50),
			field("facility_type_code", String, Situational, 1, 2),
			field("claim_frequency_code", Identifier, Situational, 1, 1),
			field("patient_status_code", Identifier, Situational, 1, 2),
			field("diagnosis_related_group_code", Identifier, Situational, 1, 4),
			field("diagnosis_related_group_weight", Decimal, Situational, 1, 15),
			field("discharge_fraction", Decimal, Situational, 1, 10),
		},
	})

	casSegment = registerSegment(&SegmentSpec{
		ID:          "CAS",
		Description: "Claims Adjustment",
		Fields: []*FieldSpec{
			enumField("claim_adjustment_group_code", Required, "CO", "CR", "OA", "PI", "PR"),
			field("adjustment_reason_code_1", Identifier, Required, 1, 5),
			field("adjustment_amount_1", Decimal, Required, 1, 18),
			field("adjustment_quantity_1", Decimal, Situational, 1, 15),
			field("adjustment_reason_code_2", Identifier, Situational, 1, 5),
			field("adjustment_amount_2", Decimal, Situational, 1, 18),
			field("adjustment_quantity_2", Decimal, Situational, 1, 15),
			field("adjustment_reason_code_3", Identifier, Situational, 1, 5),
			field("adjustment_amount_3", Decimal, Situational, 1, 18),
			field("adjustment_quantity_3", Decimal, Situational, 1, 15),
			field("adjustment_reason_code_4", Identifier, Situational, 1, 5),
			field("adjustment_amount_4", Decimal, Situational, 1, 18),
			field("adjustment_quantity_4", Decimal, Situational, 1, 15),
			field("adjustment_reason_code_5", Identifier, Situational, 1, 5),
			field("adjustment_amount_5", Decimal, Situational, 1, 18),
			field("adjustment_quantity_5", Decimal, Situational, 1, 15),
			field("adjustment_reason_code_6", Identifier, Situational, 1, 5),
			field("adjustment_amount_6", Decimal, Situational, 1, 18),
			field("adjustment_quantity_6", Decimal, Situational, 1, 15),
		},
	})

	svcSegment = registerSegment(&SegmentSpec{
		ID:          "SVC",
		Description: "Service Payment Information",
		Fields: []*FieldSpec{
			// composite; preserved verbatim
			field("composite_medical_procedure_identifier_1", String, Required, 1, 80),
			field("line_item_charge_amount", Decimal, Required, 1, 18),
			field("line_item_provider_payment_amount", Decimal, Required, 1, 18),
			field("revenue_code", String, Situational, 1, 48),
			field("units_of_service_paid_count", Decimal, Situational, 1, 15),
			// composite; preserved verbatim
			field("composite_medical_procedure_identifier_2", String, Situational, 1, 80),
			field("original_units_of_service_count", Decimal, Situational, 1, 15),
		},
	})

	plbSegment = registerSegment(&SegmentSpec{
		ID:          "PLB",
		Description: "Provider Adjustment",
		Fields: []*FieldSpec{
			field("provider_identifier", String, Required, 1, 50),
			field("fiscal_period_date", Date, Required, 8, 8),
			// composites; preserved verbatim
			field("adjustment_identifier_1", String, Required, 1, 80),
			field("provider_adjustment_amount_1", Decimal, Required, 1, 18),
			field("adjustment_identifier_2", String, Situational, 1, 80),
			field("provider_adjustment_amount_2", Decimal, Situational, 1, 18),
			field("adjustment_identifier_3", String, Situational, 1, 80),
			field("provider_adjustment_amount_3", Decimal, Situational, 1, 18),
			field("adjustment_identifier_4", String, Situational, 1, 80),
			field("provider_adjustment_amount_4", Decimal, Situational, 1, 18),
			field("adjustment_identifier_5", String, Situational, 1, 80),
			field("provider_adjustment_amount_5", Decimal, Situational, 1, 18),
			field("adjustment_identifier_6", String, Situational, 1, 80),
			field("provider_adjustment_amount_6", Decimal, Situational, 1, 18),
		},
	})

	lqSegment = registerSegment(&SegmentSpec{
		ID:          "LQ",
		Description: "Industry Code Identification",
		Fields: []*FieldSpec{
			field("code_list_qualifier_code", Identifier, Situational, 1, 3),
			field("form_identifier", String, Situational, 1, 30),
		},
	})

	miaSegment = registerSegment(&SegmentSpec{
		ID:          "MIA",
		Description: "Inpatient Adjudication Information",
		Fields: []*FieldSpec{
			field("covered_days_or_visits_count", Decimal, Required, 1, 15),
			field("pps_operating_outlier_amount", Decimal, Situational, 1, 18),
			field("lifetime_psychiatric_days_count", Decimal, Situational, 1, 15),
			field("claim_drg_amount", Decimal, Situational, 1, 18),
			field("claim_payment_remark_code", String, Situational, 1, 50),
			field("claim_disproportionate_share_amount", Decimal, Situational, 1, 18),
			field("claim_msp_pass_through_amount", Decimal, Situational, 1, 18),
			field("claim_pps_capital_amount", Decimal, Situational, 1, 18),
		},
	})

	moaSegment = registerSegment(&SegmentSpec{
		ID:          "MOA",
		Description: "Outpatient Adjudication Information",
		Fields: []*FieldSpec{
			field("reimbursement_rate", Decimal, Situational, 1, 10),
			field("claim_hcpcs_payable_amount", Decimal, Situational, 1, 18),
			field("claim_payment_remark_code_1", String, Situational, 1, 50),
			field("claim_payment_remark_code_2", String, Situational, 1, 50),
			field("claim_payment_remark_code_3", String, Situational, 1, 50),
			field("claim_payment_remark_code_4", String, Situational, 1, 50),
			field("claim_payment_remark_code_5", String, Situational, 1, 50),
			field("claim_esrd_payment_amount", Decimal, Situational, 1, 18),
			field("nonpayable_professional_component_amount", Decimal, Situational, 1, 18),
		},
	})

	ts3Segment = registerSegment(&SegmentSpec{
		ID:          "TS3",
		Description: "Provider Summary Information",
		Fields: []*FieldSpec{
			field("provider_identifier", String, Required, 1, 50),
			field("facility_type_code", String, Required, 1, 2),
			field("fiscal_period_date", Date, Required, 8, 8),
			field("total_claim_count", Numeric, Required, 1, 15),
			field("total_claim_charge_amount", Decimal, Required, 1, 18),
		},
	})

	clmSegment = registerSegment(&SegmentSpec{
		ID:          "CLM",
		Description: "Health Claim",
		Fields: []*FieldSpec{
			field("patient_control_number", String, Required, 1, 38),
			field("total_claim_charge_amount", Decimal, Required, 1, 18),
			field("claim_filing_indicator_code", Identifier, NotUsed, 0, 0),
			field("non_institutional_claim_type_code", Identifier, NotUsed, 0, 0),
			// composite; preserved verbatim
			field("health_care_service_location_information", String, Required, 1, 30),
			enumField("provider_or_supplier_signature_indicator", Required, "N", "Y"),
			field("assignment_or_plan_participation_code", Identifier, Required, 1, 1),
			enumField("benefit_assignment_certification_indicator", Required, "N", "W", "Y"),
			field("release_of_information_code", Identifier, Required, 1, 1),
			field("patient_signature_source_code", Identifier, Situational, 1, 1),
			// composite; preserved verbatim
			field("related_causes_information", String, Situational, 1, 30),
			field("special_program_indicator", Identifier, Situational, 2, 3),
			field("delay_reason_code", Identifier, Situational, 1, 2),
		},
	})

	sbrSegment = registerSegment(&SegmentSpec{
		ID:          "SBR",
		Description: "Subscriber Information",
		Fields: []*FieldSpec{
			field("payer_responsibility_code", Identifier, Required, 1, 1),
			field("individual_relationship_code", Identifier, Situational, 2, 2),
			field("group_policy_number", String, Situational, 1, 50),
			field("group_name", String, Situational, 1, 60),
			field("insurance_type_code", Identifier, Situational, 1, 3),
			field("coordination_of_benefits_code", Identifier, Situational, 1, 1),
			field("condition_response_code", Identifier, Situational, 1, 1),
			field("employment_status_code", Identifier, Situational, 2, 2),
			field("claim_filing_indicator_code", Identifier, Required, 1, 2),
		},
	})

	patSegment = registerSegment(&SegmentSpec{
		ID:          "PAT",
		Description: "Patient Information",
		Fields: []*FieldSpec{
			field("individual_relationship_code", Identifier, Situational, 2, 2),
			field("patient_location_code", Identifier, Situational, 1, 1),
			field("employment_status_code", Identifier, Situational, 2, 2),
			field("student_status_code", Identifier, Situational, 1, 1),
			enumField("date_time_period_format_qualifier", Situational, "D8"),
			field("patient_death_date", String, Situational, 8, 8),
			field("unit_or_basis_for_measurement_code", Identifier, Situational, 2, 2),
			field("patient_weight", Decimal, Situational, 1, 10),
			enumField("pregnancy_indicator", Situational, "Y"),
		},
	})

	sv1Segment = registerSegment(&SegmentSpec{
		ID:          "SV1",
		Description: "Professional Service",
		Fields: []*FieldSpec{
			// composite; preserved verbatim
			field("professional_service", String, Required, 1, 80),
			field("line_item_charge_amount", Decimal, Required, 1, 18),
			enumField("unit_or_basis_for_measurement_code", Required, "MJ", "UN"),
			field("service_unit_count", Decimal, Required, 1, 15),
			field("place_of_service_code", String, Situational, 1, 2),
			field("service_type_code", Identifier, Situational, 1, 2),
			// composite; preserved verbatim
			field("composite_diagnosis_code_pointer", String, Situational, 1, 20),
			field("monetary_amount", Decimal, Situational, 1, 18),
			enumField("emergency_indicator", Situational, "Y"),
			field("multiple_procedure_code", Identifier, Situational, 1, 2),
			enumField("epsdt_indicator", Situational, "Y"),
			enumField("family_planning_indicator", Situational, "Y"),
			field("co_pay_status_code", Identifier, Situational, 1, 1),
		},
	})

	sv2Segment = registerSegment(&SegmentSpec{
		ID:          "SV2",
		Description: "Institutional Service",
		Fields: []*FieldSpec{
			field("service_line_revenue_code", String, Required, 1, 48),
			// composite; preserved verbatim
			field("institutional_service", String, Situational, 1, 80),
			field("line_item_charge_amount", Decimal, Required, 1, 18),
			enumField("unit_or_basis_for_measurement_code", Required, "DA", "UN"),
			field("service_unit_count", Decimal, Required, 1, 15),
			field("service_line_rate", Decimal, Situational, 1, 9),
			field("line_item_denied_charge_amount", Decimal, Situational, 1, 18),
		},
	})

	sv3Segment = registerSegment(&SegmentSpec{
		ID:          "SV3",
		Description: "Dental Service",
		Fields: []*FieldSpec{
			// composite; preserved verbatim
			field("dental_service", String, Required, 1, 80),
			field("line_item_charge_amount", Decimal, Required, 1, 18),
			// composite; preserved verbatim
			field("health_care_service_location_information", String, Situational, 1, 30),
			// composite; preserved verbatim
			field("oral_cavity_designation", String, Situational, 1, 30),
			field("prosthesis_crown_or_inlay_code", Identifier, Situational, 1, 1),
			field("procedure_count", Numeric, Situational, 1, 6),
			// composite; preserved verbatim
			field("diagnosis_code_pointer", String, Situational, 1, 20),
		},
	})

	tooSegment = registerSegment(&SegmentSpec{
		ID:          "TOO",
		Description: "Tooth Identification",
		Fields: []*FieldSpec{
			enumField("code_list_qualifier_code", Situational, "JP"),
			field("tooth_code", String, Situational, 1, 30),
			// composite; preserved verbatim
			field("tooth_surface_code", String, Situational, 1, 30),
		},
	})

	oiSegment = registerSegment(&SegmentSpec{
		ID:          "OI",
		Description: "Other Health Insurance Information",
		Fields: []*FieldSpec{
			field("claim_filing_indicator_code", Identifier, NotUsed, 0, 0),
			field("claim_submission_reason_code", Identifier, NotUsed, 0, 0),
			enumField("benefit_assignment_certification_indicator", Required, "N", "W", "Y"),
			field("patient_signature_source_code", Identifier, Situational, 1, 1),
			field("provider_agreement_code", Identifier, NotUsed, 0, 0),
			field("release_of_information_code", Identifier, Required, 1, 1),
		},
	})

	cn1Segment = registerSegment(&SegmentSpec{
		ID:          "CN1",
		Description: "Contract Information",
		Fields: []*FieldSpec{
			field("contract_type_code", Identifier, Required, 2, 2),
			field("contract_amount", Decimal, Situational, 1, 18),
			field("contract_percentage", Decimal, Situational, 1, 6),
			field("contract_code", String, Situational, 1, 50),
			field("terms_discount_percentage", Decimal, Situational, 1, 6),
			field("contract_version_identifier", String, Situational, 1, 30),
		},
	})

	k3Segment = registerSegment(&SegmentSpec{
		ID:          "K3",
		Description: "File Information",
		Fields: []*FieldSpec{
			field("fixed_format_information", String, Required, 1, 80),
		},
	})

	nteSegment = registerSegment(&SegmentSpec{
		ID:          "NTE",
		Description: "Note/Special Instruction",
		Fields: []*FieldSpec{
			field("note_reference_code", Identifier, Required, 3, 3),
			field("description", String, Required, 1, 80),
		},
	})

	stcSegment = registerSegment(&SegmentSpec{
		ID:          "STC",
		Description: "Status Information",
		Fields: []*FieldSpec{
			// composite; preserved verbatim
			field("health_care_claim_status_1", String, Required, 1, 50),
			field("status_effective_date", Date, Situational, 8, 8),
			field("action_code", Identifier, Situational, 1, 2),
			field("total_claim_charge_amount", Decimal, Situational, 1, 18),
			field("claim_payment_amount", Decimal, Situational, 1, 18),
			field("adjudication_finalized_date", Date, Situational, 8, 8),
			field("payment_method_code", Identifier, Situational, 3, 3),
			field("remittance_date", Date, Situational, 8, 8),
			field("remittance_trace_number", String, Situational, 1, 16),
			// composites; preserved verbatim
			field("health_care_claim_status_2", String, Situational, 1, 50),
			field("health_care_claim_status_3", String, Situational, 1, 50),
			field("free_form_message_text", String, Situational, 1, 264),
		},
	})

	qtySegment = registerSegment(&SegmentSpec{
		ID:          "QTY",
		Description: "Quantity Information",
		Fields: []*FieldSpec{
			field("quantity_qualifier", Identifier, Required, 2, 2),
			field("quantity", Decimal, Situational, 1, 15),
			// composite; preserved verbatim
			field("composite_unit_of_measure", String, Situational, 1, 30),
			field("free_form_information", String, Situational, 1, 30),
		},
	})

	bgnSegment = registerSegment(&SegmentSpec{
		ID:          "BGN",
		Description: "Beginning Segment",
		Fields: []*FieldSpec{
			enumField("transaction_set_purpose_code", Required, "00", "15", "22"),
			field("transaction_set_reference_number", String, Required, 1, 50),
			field("transaction_set_creation_date", Date, Required, 8, 8),
			field("transaction_set_creation_time", Time, Situational, 4, 8),
			field("time_zone_code", Identifier, Situational, 2, 2),
			field("original_transaction_set_reference_number", String, Situational, 1, 50),
			field("transaction_type_code", Identifier, NotUsed, 0, 0),
			enumField("action_code", Situational, "2", "4", "RX"),
		},
	})

	hdSegment = registerSegment(&SegmentSpec{
		ID:          "HD",
		Description: "Health Coverage",
		Fields: []*FieldSpec{
			field("maintenance_type_code", Identifier, Required, 3, 3),
			field("maintenance_reason_code", Identifier, NotUsed, 0, 0),
			field("insurance_line_code", Identifier, Situational, 2, 3),
			field("plan_coverage_description", String, Situational, 1, 50),
			field("coverage_level_code", Identifier, Situational, 3, 3),
		},
	})

	idcSegment = registerSegment(&SegmentSpec{
		ID:          "IDC",
		Description: "Identification Card",
		Fields: []*FieldSpec{
			field("plan_coverage_description", String, Required, 1, 50),
			field("identification_card_type_code", Identifier, Required, 1, 1),
			field("identification_card_count", Numeric, Situational, 1, 2),
			field("action_code", Identifier, Situational, 1, 2),
		},
	})

	actSegment = registerSegment(&SegmentSpec{
		ID:          "ACT",
		Description: "Account Identification",
		Fields: []*FieldSpec{
			field("tpa_account_number", String, Required, 1, 35),
			field("name", String, Situational, 1, 60),
			field("identification_code_qualifier", Identifier, Situational, 1, 2),
			field("identification_code", String, Situational, 2, 80),
			field("account_number_qualifier", Identifier, Situational, 1, 3),
			field("tpa_account_number_2", String, Situational, 1, 35),
			field("description", String, Situational, 1, 80),
		},
	})

	entSegment = registerSegment(&SegmentSpec{
		ID:          "ENT",
		Description: "Entity",
		Fields: []*FieldSpec{
			field("assigned_number", Numeric, Situational, 1, 6),
			field("entity_identifier_code", Identifier, Situational, 2, 3),
			field("identification_code_qualifier", Identifier, Situational, 1, 2),
			field("identification_code", String, Situational, 2, 80),
		},
	})

	rmrSegment = registerSegment(&SegmentSpec{
		ID:          "RMR",
		Description: "Remittance Advice Accounts Receivable",
		Fields: []*FieldSpec{
			field("reference_identification_qualifier", Identifier, Required, 2, 3),
			field("reference_identification", String, Required, 1, 50),
			field("payment_action_code", Identifier, Situational, 2, 2),
			field("detail_premium_payment_amount", Decimal, Required, 1, 18),
			field("billed_premium_amount", Decimal, Situational, 1, 18),
		},
	})

	umSegment = registerSegment(&SegmentSpec{
		ID:          "UM",
		Description: "Health Care Services Review Information",
		Fields: []*FieldSpec{
			field("request_category_code", Identifier, Required, 1, 2),
			field("certification_type_code", Identifier, Situational, 1, 1),
			field("service_type_code", Identifier, Situational, 1, 2),
			// composite; preserved verbatim
			field("health_care_service_location_information", String, Situational, 1, 30),
			// composite; preserved verbatim
			field("related_causes_information", String, Situational, 1, 30),
			field("level_of_service_code", Identifier, Situational, 1, 3),
			field("current_health_condition_code", Identifier, Situational, 1, 1),
			field("prognosis_code", Identifier, Situational, 1, 1),
			field("release_of_information_code", Identifier, Situational, 1, 1),
		},
	})

	hcrSegment = registerSegment(&SegmentSpec{
		ID:          "HCR",
		Description: "Health Care Services Review",
		Fields: []*FieldSpec{
			field("action_code", Identifier, Required, 1, 2),
			field("review_identification_number", String, Situational, 1, 50),
			field("review_decision_reason_code", Identifier, Situational, 1, 2),
			enumField("second_surgical_opinion_indicator", Situational, "Y"),
		},
	})

	cl1Segment = registerSegment(&SegmentSpec{
		ID:          "CL1",
		Description: "Institutional Claim Code",
		Fields: []*FieldSpec{
			field("admission_type_code", Identifier, Situational, 1, 1),
			field("admission_source_code", Identifier, Situational, 1, 1),
			field("patient_status_code", Identifier, Situational, 1, 2),
		},
	})
)
